package dataprocessing

import (
	"context"
	"log/slog"

	"sheetops/pkg/contracts/domain"
)

// AnalyzeRisk cleans the transaction table and classifies each surviving row.
// Rows without Transaction_ID or Amount, with a negative Amount, or repeating an
// earlier kept Transaction_ID of the same kind are dropped. The summary always lists High, Medium
// and Low in that order.
func (p *Processor) AnalyzeRisk(ctx context.Context, transactions, master domain.Table) domain.RiskReport {
	log := p.newIssueLog(ctx)
	customers := KeySet(master, domain.FieldCustomerID)
	seen := make(Set, transactions.Len())
	counts := make(map[domain.RiskLevel]int, len(domain.RiskLevels))
	clean := make([]domain.CleanTransaction, 0, transactions.Len())
	skipped := 0

	for pos, row := range transactions.Data {
		id, hasID := TryGet(row, domain.FieldTransactionID)
		if !hasID {
			skipped++
			continue
		}
		if _, ok := TryGet(row, domain.FieldAmount); !ok {
			skipped++
			continue
		}
		amount, err := FloatField(row, domain.FieldAmount)
		if err != nil {
			log.reject(TableTransactions, transactions, pos, domain.FieldAmount, err)
			continue
		}
		if amount < 0 {
			skipped++
			continue
		}
		if seen.Has(ExactKey(id)) {
			skipped++
			continue
		}
		seen.Add(ExactKey(id))

		customer, known := p.resolveCustomer(row, customers)
		level := p.classify(amount, known)
		counts[level]++

		clean = append(clean, domain.CleanTransaction{
			TransactionID: id,
			CustomerID:    customer,
			Amount:        amount,
			RiskLevel:     level,
		})
	}

	summary := make([]domain.RiskSummaryRow, 0, len(domain.RiskLevels))
	for _, level := range domain.RiskLevels {
		summary = append(summary, domain.RiskSummaryRow{RiskType: level, Count: counts[level]})
	}

	p.logger.DebugContext(ctx, "risk analyzed",
		slog.Int("clean", len(clean)),
		slog.Int("dropped", skipped),
		slog.Int("rejected", len(log.issues)))

	return domain.RiskReport{CleanData: clean, RiskSummary: summary, Issues: log.issues}
}

// resolveCustomer returns the Customer_ID to report and whether it names a
// customer from the master list
func (p *Processor) resolveCustomer(row domain.Row, customers Set) (domain.Value, bool) {
	key, ok := KeyOf(row, domain.FieldCustomerID)
	if !ok {
		return domain.StringValue(domain.MissingCustomer), false
	}
	if !customers.Has(key) {
		return domain.StringValue(key + domain.UnknownCustomerSuffix), false
	}
	v, _ := TryGet(row, domain.FieldCustomerID)
	return v, true
}

func (p *Processor) classify(amount float64, knownCustomer bool) domain.RiskLevel {
	switch {
	case amount > p.policy.HighRiskAmount:
		return domain.RiskHigh
	case !knownCustomer:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
