package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetops/pkg/contracts/domain"
)

func summaryCounts(report domain.RiskReport) map[domain.RiskLevel]int {
	counts := make(map[domain.RiskLevel]int, len(report.RiskSummary))
	for _, s := range report.RiskSummary {
		counts[s.RiskType] = s.Count
	}
	return counts
}

func TestAnalyzeRisk(t *testing.T) {
	ctx := context.Background()
	master := table(
		row("Customer_ID", "C100", "Name", "Alice Corp"),
		row("Customer_ID", "C101", "Name", "Bob Ltd"),
		row("Customer_ID", "C102", "Name", "Charlie Inc"),
	)

	t.Run("sample workbooks", func(t *testing.T) {
		transactions := table(
			row("Transaction_ID", "T001", "Amount", 5000, "Customer_ID", "C100"),
			row("Transaction_ID", "T002", "Amount", 150000, "Customer_ID", "C101"),
			row("Transaction_ID", "T003", "Amount", 200),
			row("Transaction_ID", "T005", "Amount", -5000, "Customer_ID", "C102"),
			row("Transaction_ID", "T001", "Amount", 5000, "Customer_ID", "C100"),
			row("Transaction_ID", "T006", "Amount", 500, "Customer_ID", "C999"),
		)

		report := newTestProcessor().AnalyzeRisk(ctx, transactions, master)

		assert.Equal(t, []domain.CleanTransaction{
			{TransactionID: domain.StringValue("T001"), CustomerID: domain.StringValue("C100"), Amount: 5000, RiskLevel: domain.RiskLow},
			{TransactionID: domain.StringValue("T002"), CustomerID: domain.StringValue("C101"), Amount: 150000, RiskLevel: domain.RiskHigh},
			{TransactionID: domain.StringValue("T003"), CustomerID: domain.StringValue("MISSING"), Amount: 200, RiskLevel: domain.RiskMedium},
			{TransactionID: domain.StringValue("T006"), CustomerID: domain.StringValue("C999 (Unknown)"), Amount: 500, RiskLevel: domain.RiskMedium},
		}, report.CleanData)

		assert.Equal(t, []domain.RiskSummaryRow{
			{RiskType: domain.RiskHigh, Count: 1},
			{RiskType: domain.RiskMedium, Count: 2},
			{RiskType: domain.RiskLow, Count: 1},
		}, report.RiskSummary)
		assert.Empty(t, report.Issues)
	})

	t.Run("high amount ignores customer validity", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", "T1", "Amount", 150000, "Customer_ID", "C1"),
				row("Transaction_ID", "T2", "Amount", 100000.01),
			),
			table(),
		)

		require.Len(t, report.CleanData, 2)
		assert.Equal(t, domain.RiskHigh, report.CleanData[0].RiskLevel)
		assert.Equal(t, "C1 (Unknown)", report.CleanData[0].CustomerID.String())
		assert.Equal(t, domain.RiskHigh, report.CleanData[1].RiskLevel)
	})

	t.Run("threshold amount is not high risk", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(row("Transaction_ID", "T1", "Amount", 100000, "Customer_ID", "C100")),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, domain.RiskLow, report.CleanData[0].RiskLevel)
	})

	t.Run("unknown customer is medium risk", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(row("Transaction_ID", "T2", "Amount", 500, "Customer_ID", "C9")),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, domain.RiskMedium, report.CleanData[0].RiskLevel)
		assert.Equal(t, "C9 (Unknown)", report.CleanData[0].CustomerID.String())
	})

	t.Run("empty customer is missing", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(row("Transaction_ID", "T1", "Amount", 10, "Customer_ID", "")),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, domain.MissingCustomer, report.CleanData[0].CustomerID.String())
		assert.Equal(t, domain.RiskMedium, report.CleanData[0].RiskLevel)
	})

	t.Run("rows without id or amount are skipped silently", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Amount", 10, "Customer_ID", "C100"),
				row("Transaction_ID", "T1", "Customer_ID", "C100"),
				row("Transaction_ID", "T2", "Amount", 0, "Customer_ID", "C100"),
			),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, "T2", report.CleanData[0].TransactionID.String())
		assert.Empty(t, report.Issues)
	})

	t.Run("dropped rows do not claim their id", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", "T1", "Amount", -1, "Customer_ID", "C100"),
				row("Transaction_ID", "T1", "Amount", "bad", "Customer_ID", "C100"),
				row("Transaction_ID", "T1", "Amount", 7, "Customer_ID", "C101"),
				row("Transaction_ID", "T1", "Amount", 8, "Customer_ID", "C102"),
			),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, 7.0, report.CleanData[0].Amount)
		assert.Equal(t, "C101", report.CleanData[0].CustomerID.String())
	})

	t.Run("non-numeric amount is reported", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", "T1", "Amount", "ten"),
				row("Transaction_ID", "T2", "Amount", "2,500", "Customer_ID", "C100"),
			),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, 2500.0, report.CleanData[0].Amount)
		assert.Equal(t, []domain.ValidationIssue{
			{Table: TableTransactions, Row: 0, Field: domain.FieldAmount, Reason: ErrNotNumeric.Error()},
		}, report.Issues)
		assert.Equal(t, 1, summaryCounts(report)[domain.RiskLow])
	})

	t.Run("misgrouped commas are not read as thousands", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", "T1", "Amount", "1,5", "Customer_ID", "C100"),
				row("Transaction_ID", "T9", "Amount", "1,00,000,1", "Customer_ID", "C100"),
				row("Transaction_ID", "T3", "Amount", "100,001", "Customer_ID", "C100"),
			),
			master,
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, "T3", report.CleanData[0].TransactionID.String())
		assert.Equal(t, 100001.0, report.CleanData[0].Amount)
		assert.Equal(t, domain.RiskHigh, report.CleanData[0].RiskLevel)
		assert.Equal(t, []domain.ValidationIssue{
			{Table: TableTransactions, Row: 0, Field: domain.FieldAmount, Reason: ErrNotNumeric.Error()},
			{Table: TableTransactions, Row: 1, Field: domain.FieldAmount, Reason: ErrNotNumeric.Error()},
		}, report.Issues)
	})

	t.Run("numeric ids keep their type", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", 1, "Amount", 10, "Customer_ID", 100),
				row("Transaction_ID", 1, "Amount", 30, "Customer_ID", 100),
			),
			table(row("Customer_ID", "100")),
		)

		require.Len(t, report.CleanData, 1)
		assert.Equal(t, domain.IntValue(1), report.CleanData[0].TransactionID)
		assert.Equal(t, 10.0, report.CleanData[0].Amount)
		assert.Equal(t, domain.IntValue(100), report.CleanData[0].CustomerID)
		assert.Equal(t, domain.RiskLow, report.CleanData[0].RiskLevel)
	})

	t.Run("ids of different kinds are distinct", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx,
			table(
				row("Transaction_ID", 17, "Amount", 10, "Customer_ID", "C100"),
				row("Transaction_ID", "17", "Amount", 20, "Customer_ID", "C100"),
				row("Transaction_ID", 17.5, "Amount", 30, "Customer_ID", "C100"),
				row("Transaction_ID", "17", "Amount", 40, "Customer_ID", "C100"),
			),
			master,
		)

		require.Len(t, report.CleanData, 3)
		assert.Equal(t, domain.IntValue(17), report.CleanData[0].TransactionID)
		assert.Equal(t, domain.StringValue("17"), report.CleanData[1].TransactionID)
		assert.Equal(t, 20.0, report.CleanData[1].Amount)
		assert.Equal(t, domain.FloatValue(17.5), report.CleanData[2].TransactionID)
	})

	t.Run("summary emitted for empty input", func(t *testing.T) {
		report := newTestProcessor().AnalyzeRisk(ctx, table(), table())

		assert.NotNil(t, report.CleanData)
		assert.Empty(t, report.CleanData)
		assert.Equal(t, []domain.RiskSummaryRow{
			{RiskType: domain.RiskHigh},
			{RiskType: domain.RiskMedium},
			{RiskType: domain.RiskLow},
		}, report.RiskSummary)
	})
}
