// Package files locates input workbooks on disk.
//
// Discovery lists the workbooks of a directory, skipping the ~$ owner files
// Excel creates while a workbook is open, and resolves a requested file name
// case-insensitively so Employee_Master.xlsx and employee_master.XLSX match.
//
//	discovery := files.NewDiscovery(paths.InputDir)
//	path, err := discovery.Resolve("Employee_Master.xlsx")
package files
