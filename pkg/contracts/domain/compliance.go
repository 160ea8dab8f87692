package domain

// Access column headers
const (
	FieldUserID     = "User_ID"
	FieldRole       = "Role"
	FieldAccessType = "Access_Type"
	FieldStatus     = "Status"
)

// ComplianceStatus labels a violation or a summary line
type ComplianceStatus string

const (
	StatusCompliant        ComplianceStatus = "Compliant"
	StatusNonCompliant     ComplianceStatus = "Non-Compliant"
	StatusUnauthorizedRole ComplianceStatus = "Unauthorized Role"
	StatusExcessAccess     ComplianceStatus = "Excess Access"
)

// ViolationColumns is the column layout of the violation report
var ViolationColumns = []string{FieldUserID, FieldRole, FieldAccessType, FieldStatus}

// ComplianceSummaryColumns is the column layout of the compliance summary
var ComplianceSummaryColumns = []string{FieldStatus, FieldCount}

// ComplianceViolation is a user access record that broke the access rules
type ComplianceViolation struct {
	UserID     string           `json:"User_ID"`
	Role       string           `json:"Role"`
	AccessType string           `json:"Access_Type"`
	Status     ComplianceStatus `json:"Status"`
}

// Row flattens the violation into a table row
func (v ComplianceViolation) Row() Row {
	return Row{
		FieldUserID:     StringValue(v.UserID),
		FieldRole:       StringValue(v.Role),
		FieldAccessType: StringValue(v.AccessType),
		FieldStatus:     StringValue(string(v.Status)),
	}
}

// ComplianceSummaryRow counts checked rows per outcome
type ComplianceSummaryRow struct {
	Status ComplianceStatus `json:"Status"`
	Count  int              `json:"Count"`
}

// Row flattens the summary line into a table row
func (s ComplianceSummaryRow) Row() Row {
	return Row{
		FieldStatus: StringValue(string(s.Status)),
		FieldCount:  IntValue(int64(s.Count)),
	}
}

// ComplianceReport is the output of a compliance check
type ComplianceReport struct {
	Violations []ComplianceViolation  `json:"violations"`
	Summary    []ComplianceSummaryRow `json:"summary"`
}
