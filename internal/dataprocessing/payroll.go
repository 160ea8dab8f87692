package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"sheetops/pkg/contracts/domain"
)

// payrollEntry is an in-progress employee record
type payrollEntry struct {
	record    domain.EmployeeRecord
	basic     decimal.Decimal
	allowance decimal.Decimal
	hasSalary bool
}

// MergePayroll joins the employee, salary and attendance tables on Employee_ID
// and computes gross and final pay. One record is emitted per distinct employee,
// sorted by Employee_ID.
func (p *Processor) MergePayroll(ctx context.Context, employee, attendance, salary domain.Table) domain.PayrollResult {
	log := p.newIssueLog(ctx)
	entries := make(map[string]*payrollEntry, employee.Len())

	for key, pos := range IndexBy(employee, domain.FieldEmployeeID) {
		entry := &payrollEntry{record: domain.EmployeeRecord{EmployeeID: key}}
		if name, ok := TryGet(employee.Data[pos], domain.FieldName); ok {
			entry.record.Name = &name
		}
		entries[key] = entry
	}

	LeftJoin(salary, domain.FieldEmployeeID, entries, func(pos int, row domain.Row, entry *payrollEntry) {
		basic, err := DecimalField(row, domain.FieldBasicSalary)
		if err != nil {
			log.reject(TableSalary, salary, pos, domain.FieldBasicSalary, err)
			return
		}
		allowance, err := DecimalField(row, domain.FieldAllowance)
		if err != nil {
			log.reject(TableSalary, salary, pos, domain.FieldAllowance, err)
			return
		}
		entry.basic, entry.allowance, entry.hasSalary = basic, allowance, true
		entry.record.BasicSalary = floatPtr(basic)
		entry.record.Allowance = floatPtr(allowance)
	})

	LeftJoin(attendance, domain.FieldEmployeeID, entries, func(pos int, row domain.Row, entry *payrollEntry) {
		days, err := FloatField(row, domain.FieldDaysPresent)
		if err != nil {
			log.reject(TableAttendance, attendance, pos, domain.FieldDaysPresent, err)
			return
		}
		entry.record.DaysPresent = &days
		if !entry.hasSalary {
			return
		}
		gross := entry.basic.Add(entry.allowance)
		entry.record.GrossSalary = floatPtr(gross)
		entry.record.FinalSalary = floatPtr(p.policy.finalPay(gross, days))
	})

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]domain.EmployeeRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, entries[id].record)
	}

	p.logger.DebugContext(ctx, "payroll merged",
		slog.Int("employees", len(records)),
		slog.Int("rejected", len(log.issues)))

	return domain.PayrollResult{Records: records, Issues: log.issues}
}

func floatPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}
