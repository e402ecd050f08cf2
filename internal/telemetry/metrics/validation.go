package metrics

import (
	"github.com/2beens/roundtracker/internal/rounds"
)

// ObserveValidation counts one validation outcome and the records it flagged.
func (m *Manager) ObserveValidation(kind string, result rounds.ValidationResult) {
	outcome := "valid"
	switch {
	case !result.IsValid:
		outcome = "invalid"
	case len(result.Warnings) > 0:
		outcome = "warnings"
	}
	m.CounterValidations.WithLabelValues(kind, outcome).Inc()

	md := result.Metadata
	if md.RoundRange.IsZero() {
		// nothing was classified without a round start
		return
	}
	if missing := md.TotalRecords - md.ValidRecords - len(md.OutsideRoundData); missing > 0 {
		m.CounterValidationIssues.WithLabelValues(kind, "missing_date").Add(float64(missing))
	}
	if n := len(md.OutsideRoundData); n > 0 {
		m.CounterValidationIssues.WithLabelValues(kind, "outside_round").Add(float64(n))
	}
	if n := len(md.MisalignedData); n > 0 {
		m.CounterValidationIssues.WithLabelValues(kind, "misaligned").Add(float64(n))
	}
}
