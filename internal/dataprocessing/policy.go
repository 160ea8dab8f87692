package dataprocessing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy holds the thresholds used by the payroll and risk rules
type Policy struct {
	// AttendanceThreshold is the number of days below which pay is reduced
	AttendanceThreshold float64

	// DeductionRate is the share of gross pay withheld below the threshold
	DeductionRate decimal.Decimal

	// HighRiskAmount is the amount above which a transaction is High Risk
	HighRiskAmount float64
}

// DefaultPolicy returns the standard thresholds: 20 days, 10% and 100000
func DefaultPolicy() Policy {
	return Policy{
		AttendanceThreshold: 20,
		DeductionRate:       decimal.NewFromFloat(0.10),
		HighRiskAmount:      100000,
	}
}

// Validate checks that the thresholds are usable
func (p Policy) Validate() error {
	if p.AttendanceThreshold < 0 {
		return fmt.Errorf("attendance threshold must not be negative: %v", p.AttendanceThreshold)
	}
	if p.DeductionRate.IsNegative() || p.DeductionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("deduction rate must be within [0, 1]: %s", p.DeductionRate)
	}
	if p.HighRiskAmount < 0 {
		return fmt.Errorf("high risk amount must not be negative: %v", p.HighRiskAmount)
	}
	return nil
}

// finalPay applies the attendance deduction to gross pay
func (p Policy) finalPay(gross decimal.Decimal, daysPresent float64) decimal.Decimal {
	if daysPresent < p.AttendanceThreshold {
		return gross.Mul(decimal.NewFromInt(1).Sub(p.DeductionRate))
	}
	return gross
}
