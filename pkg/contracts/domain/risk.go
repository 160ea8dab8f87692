package domain

// Transaction column headers
const (
	FieldTransactionID = "Transaction_ID"
	FieldCustomerID    = "Customer_ID"
	FieldAmount        = "Amount"
	FieldRiskLevel     = "Risk_Level"
	FieldRiskType      = "Risk_Type"
	FieldCount         = "Count"
)

// MissingCustomer replaces an absent or empty Customer_ID in cleaned output
const MissingCustomer = "MISSING"

// UnknownCustomerSuffix marks a Customer_ID that is not in the master list
const UnknownCustomerSuffix = " (Unknown)"

// RiskLevel is the tier assigned to a cleaned transaction
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskLow    RiskLevel = "Low Risk"
)

// RiskLevels lists the tiers in summary order
var RiskLevels = []RiskLevel{RiskHigh, RiskMedium, RiskLow}

// CleanTransactionColumns is the column layout of the cleaned transactions report
var CleanTransactionColumns = []string{FieldTransactionID, FieldCustomerID, FieldAmount, FieldRiskLevel}

// RiskSummaryColumns is the column layout of the risk summary report
var RiskSummaryColumns = []string{FieldRiskType, FieldCount}

// CleanTransaction is a transaction that survived cleaning
type CleanTransaction struct {
	TransactionID Value     `json:"Transaction_ID"`
	CustomerID    Value     `json:"Customer_ID"`
	Amount        float64   `json:"Amount"`
	RiskLevel     RiskLevel `json:"Risk_Level"`
}

// Row flattens the transaction into a table row
func (c CleanTransaction) Row() Row {
	row := Row{
		FieldTransactionID: c.TransactionID,
		FieldCustomerID:    c.CustomerID,
		FieldRiskLevel:     StringValue(string(c.RiskLevel)),
	}
	setFloat(row, FieldAmount, &c.Amount)
	return row
}

// RiskSummaryRow counts cleaned transactions per tier
type RiskSummaryRow struct {
	RiskType RiskLevel `json:"Risk_Type"`
	Count    int       `json:"Count"`
}

// Row flattens the summary line into a table row
func (s RiskSummaryRow) Row() Row {
	return Row{
		FieldRiskType: StringValue(string(s.RiskType)),
		FieldCount:    IntValue(int64(s.Count)),
	}
}

// RiskReport is the output of a risk analysis
type RiskReport struct {
	CleanData   []CleanTransaction `json:"cleanData"`
	RiskSummary []RiskSummaryRow   `json:"riskSummary"`
	Issues      []ValidationIssue  `json:"issues,omitempty"`
}
