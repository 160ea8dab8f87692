package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "sheetops/internal/errors"
)

// lockPrefix marks the owner files Excel leaves next to open workbooks
const lockPrefix = "~$"

// workbookExts lists the extensions excelize can open
var workbookExts = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates input workbooks under a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// IsWorkbook reports whether name looks like a readable workbook
func IsWorkbook(name string) bool {
	if strings.HasPrefix(name, lockPrefix) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range workbookExts {
		if ext == known {
			return true
		}
	}
	return false
}

// FindWorkbooks lists the workbooks in dir, sorted by name. A relative dir is
// taken from the base path.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := d.path(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read directory", err).
			WithContext("directory", fullPath)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbook(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Resolve returns the path of the named workbook. An exact match wins; failing
// that, a workbook in the same directory whose name differs only in case is used.
func (d *Discovery) Resolve(name string) (string, error) {
	if name == "" {
		return "", apperrors.NewAppValidationError("workbook name is empty")
	}

	path := d.path(name)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a workbook", path))
	case err == nil:
		return path, nil
	case !os.IsNotExist(err):
		return "", apperrors.NewStorageError("failed to stat workbook", err).WithContext("path", path)
	}

	dir := filepath.Dir(path)
	candidates, listErr := d.FindWorkbooks(dir)
	if listErr != nil {
		return "", apperrors.NewNotFoundError("workbook " + path)
	}

	base := filepath.Base(path)
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.EqualFold(c.Name, base) {
			return c.Path, nil
		}
		names = append(names, c.Name)
	}

	return "", apperrors.NewNotFoundError("workbook "+path).
		WithContext("available", names)
}

func (d *Discovery) path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(d.basePath, p)
}
