package dataprocessing

import (
	"context"
	"log/slog"

	"sheetops/pkg/contracts/domain"
)

// CheckCompliance validates each user access row against the role matrix.
// An exception for the (User_ID, Access_Type) pair overrides every other rule.
// Rows without a User_ID are skipped and not counted.
func (p *Processor) CheckCompliance(ctx context.Context, userAccess, matrix, exceptions domain.Table) domain.ComplianceReport {
	allowed := GroupSet(matrix, domain.FieldRole, domain.FieldAccessType)
	overrides := CompositeKeySet(exceptions, domain.FieldUserID, domain.FieldAccessType)

	violations := make([]domain.ComplianceViolation, 0)
	compliant := 0

	for _, row := range userAccess.Data {
		userID, ok := KeyOf(row, domain.FieldUserID)
		if !ok {
			continue
		}
		role := Text(row, domain.FieldRole)
		access := Text(row, domain.FieldAccessType)

		status, ok := evaluateAccess(userID, role, access, allowed, overrides)
		if ok {
			compliant++
			continue
		}
		violations = append(violations, domain.ComplianceViolation{
			UserID:     userID,
			Role:       role,
			AccessType: access,
			Status:     status,
		})
	}

	p.logger.DebugContext(ctx, "compliance checked",
		slog.Int("compliant", compliant),
		slog.Int("violations", len(violations)))

	return domain.ComplianceReport{
		Violations: violations,
		Summary: []domain.ComplianceSummaryRow{
			{Status: domain.StatusCompliant, Count: compliant},
			{Status: domain.StatusNonCompliant, Count: len(violations)},
		},
	}
}

// evaluateAccess returns true for a compliant row, otherwise the violation status
func evaluateAccess(userID, role, access string, allowed map[string]Set, overrides Set) (domain.ComplianceStatus, bool) {
	if overrides.Has(CompositeKey(userID, access)) {
		return domain.StatusCompliant, true
	}
	permitted, known := allowed[role]
	if !known {
		return domain.StatusUnauthorizedRole, false
	}
	if !permitted.Has(access) {
		return domain.StatusExcessAccess, false
	}
	return domain.StatusCompliant, true
}
