// Package http implements the HTTP handlers of the sheetops web service.
// Handlers stay thin: they decode and validate requests, delegate to the
// services package and render results or RFC 7807 problems.
//
// # Endpoints
//
//	POST /api/v1/payroll             JSON {employee, attendance, salary}
//	POST /api/v1/risk                JSON {transactions, master}
//	POST /api/v1/compliance          JSON {user_access, access_matrix, exceptions}
//	POST /api/v1/{op}/upload         multipart, one workbook per table
//	GET  /api/health[/ready|/live]   health probes
//	GET  /api/version                build information
//
// Every table in a JSON body has the shape {"data": [row, ...]}. Rows whose
// fields fail numeric coercion are excluded; their count is reported in the
// X-Rows-Rejected response header.
package http
