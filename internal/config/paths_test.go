package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	absReports := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name string
		cfg  PathsConfig
		want Paths
	}{
		{
			name: "defaults under base",
			cfg:  PathsConfig{BaseDir: base},
			want: Paths{
				BaseDir:    base,
				InputDir:   filepath.Join(base, "data", "input"),
				ReportsDir: filepath.Join(base, "data", "reports"),
				LogsDir:    filepath.Join(base, "logs"),
			},
		},
		{
			name: "absolute directories are kept",
			cfg:  PathsConfig{BaseDir: base, InputDir: "in", ReportsDir: absReports},
			want: Paths{
				BaseDir:    base,
				InputDir:   filepath.Join(base, "in"),
				ReportsDir: absReports,
				LogsDir:    filepath.Join(base, "logs"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePaths(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestResolvePathsDefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolvePaths(PathsConfig{})
	require.NoError(t, err)
	assert.Equal(t, wd, got.BaseDir)
}

func TestEnsureDirectories(t *testing.T) {
	paths, err := ResolvePaths(PathsConfig{BaseDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.InputDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPathHelperMethods(t *testing.T) {
	paths := &Paths{ReportsDir: "/data/reports"}

	assert.Equal(t, filepath.Join("/data/reports", "Risk_Summary_Report.xlsx"), paths.GetReportPath("Risk_Summary_Report.xlsx"))

	abs := filepath.Join(t.TempDir(), "Salary_Structure.xlsx")
	assert.Equal(t, abs, paths.GetReportPath(abs))
}
