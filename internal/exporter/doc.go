// Package exporter writes processing results to report files.
//
// Two table writers share one layout: a header row followed by one line per
// record, with unset fields left blank.
//
// CSVWriter: UTF-8 CSV with a BOM so spreadsheet applications detect the encoding.
//
// XLSXWriter: a single-sheet workbook built with excelize.
//
// ReportWriter picks a writer by Format and names files after the report they
// hold (Final_Payroll_Report, Cleaned_Transactions, Risk_Summary_Report,
// Violation_Report, Compliance_Summary).
//
// Example usage:
//
//	paths, _ := config.ResolvePaths(cfg.Paths)
//	reports := exporter.NewReportWriter(paths, exporter.FormatXLSX, logger, metrics)
//	files, err := reports.WritePayroll(ctx, result)
package exporter
