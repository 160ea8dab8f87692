// Package dataprocessing implements the table operations behind sheetops:
// payroll merging, transaction risk scoring and access compliance checking.
//
// Every operation is a pure function of its input tables. Lookups over the
// auxiliary tables are built once per call (IndexBy, KeySet, GroupSet,
// CompositeKeySet) and the primary table is scanned a single time, so the
// total work stays linear in the input size.
//
// # Row access
//
// A field of a Row is absent, present but empty, or present. TryGet and
// StateOf expose that distinction; Float and Decimal coerce numeric text
// (trimmed, thousands separators removed) and fail on anything else.
//
// # Usage
//
//	p := dataprocessing.NewProcessor(logger, dataprocessing.DefaultPolicy())
//	result := p.MergePayroll(ctx, employee, attendance, salary)
//	report := p.AnalyzeRisk(ctx, transactions, master)
//	compliance := p.CheckCompliance(ctx, userAccess, matrix, exceptions)
//
// Rows that cannot be coerced are excluded and listed in the result's
// Issues. The operations themselves never fail.
//
// # Workbooks
//
// ReadWorkbook and ParseWorkbook load the first sheet of an Excel workbook
// into a Table, using the first row as column headers.
package dataprocessing
