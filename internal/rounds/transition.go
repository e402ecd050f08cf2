package rounds

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrMissingRoundData = errors.New("missing round data")
	ErrMissingStartDate = errors.New("missing round start date")
)

// TransitionError is returned by the transition operations instead of partial results.
type TransitionError struct {
	Op  string
	Err error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

const (
	ConflictDateOverlap              = "date_overlap"
	ConflictWorkoutBoundaryViolation = "workout_boundary_violation"

	IssueOverlappingRounds    = "overlapping_rounds"
	IssueOrphanedWorkout      = "orphaned_workout"
	IssueWorkoutRoundMismatch = "workout_round_mismatch"
	IssueOrphanedHealthData   = "orphaned_health_data"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Transitions composes the calculator and the classifier into round archive and
// recalculation reports. It never mutates the records it is given.
type Transitions struct {
	calc      *Calculator
	validator *Validator
	journal   *Journal
	now       func() time.Time
}

func NewTransitions(validator *Validator) *Transitions {
	return &Transitions{
		calc:      validator.calc,
		validator: validator,
		journal:   validator.journal,
		now:       time.Now,
	}
}

type Conflict struct {
	Type      string   `json:"type"`
	Message   string   `json:"message"`
	RecordIDs []string `json:"recordIds,omitempty"`
}

type IsolationReport struct {
	IsValid   bool       `json:"isValid"`
	Conflicts []Conflict `json:"conflicts"`
	Warnings  []string   `json:"warnings"`
}

// ValidateRoundDataIsolation checks that a new round does not reach back into a
// historical one. Overlapping dates and workouts dated on the wrong side of the
// boundary are blocking conflicts; health entries in the overlap are warnings.
func (t *Transitions) ValidateRoundDataIsolation(historical, next Round, workouts []WorkoutRecord, health []Record) IsolationReport {
	report := IsolationReport{
		Conflicts: make([]Conflict, 0),
		Warnings:  make([]string, 0),
	}

	if historical.StartDate.IsZero() || next.StartDate.IsZero() {
		report.Warnings = append(report.Warnings, "isolation not checked: both rounds need a start date")
		report.IsValid = true
		t.journal.Warn("round isolation skipped, missing start date", map[string]any{
			"historical_round": historical.Number,
			"new_round":        next.Number,
		})
		return report
	}

	historicalEnd := t.calc.EffectiveRange(historical.StartDate, historical.EndDate).EndDate
	nextStart := t.calc.StartOfDay(next.StartDate)

	if !nextStart.After(historicalEnd) {
		report.Conflicts = append(report.Conflicts, Conflict{
			Type: ConflictDateOverlap,
			Message: fmt.Sprintf(
				"round %d starts on %s, which is not after round %d ends on %s",
				next.Number, t.calc.FormatDate(nextStart), historical.Number, t.calc.FormatDate(historicalEnd),
			),
		})
	}

	var lateHistorical, earlyNext []string
	for _, w := range workouts {
		date, ok := t.calc.ParseDate(w.RecordDate())
		if !ok {
			continue
		}
		day := t.calc.StartOfDay(date)
		switch w.StoredRound() {
		case historical.Number:
			if !day.Before(nextStart) {
				lateHistorical = append(lateHistorical, w.RecordID())
			}
		case next.Number:
			if !day.After(historicalEnd) {
				earlyNext = append(earlyNext, w.RecordID())
			}
		}
	}
	if len(lateHistorical) > 0 {
		report.Conflicts = append(report.Conflicts, Conflict{
			Type: ConflictWorkoutBoundaryViolation,
			Message: fmt.Sprintf("%d workouts of round %d are dated on or after round %d starts",
				len(lateHistorical), historical.Number, next.Number),
			RecordIDs: lateHistorical,
		})
	}
	if len(earlyNext) > 0 {
		report.Conflicts = append(report.Conflicts, Conflict{
			Type: ConflictWorkoutBoundaryViolation,
			Message: fmt.Sprintf("%d workouts of round %d are dated on or before round %d ends",
				len(earlyNext), next.Number, historical.Number),
			RecordIDs: earlyNext,
		})
	}

	overlapping := 0
	for _, h := range health {
		date, ok := t.calc.ParseDate(h.RecordDate())
		if !ok {
			continue
		}
		day := t.calc.StartOfDay(date)
		if !day.Before(nextStart) && !day.After(historicalEnd) {
			overlapping++
		}
	}
	if overlapping > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"%d health entries fall within both round %d and round %d", overlapping, historical.Number, next.Number,
		))
	}

	report.IsValid = len(report.Conflicts) == 0
	data := map[string]any{
		"historical_round": historical.Number,
		"new_round":        next.Number,
		"conflicts":        len(report.Conflicts),
		"warnings":         len(report.Warnings),
	}
	if report.IsValid {
		t.journal.Info("round isolation validated", data)
	} else {
		t.journal.Error("round isolation conflicts found", data)
	}

	return report
}

type ArchivedSet struct {
	Total      int              `json:"total"`
	Excluded   int              `json:"excluded"`
	RecordIDs  []string         `json:"recordIds"`
	Validation ValidationResult `json:"validation"`
}

// RoundArchive is the frozen summary of a finished round. Persisting it is up to the caller.
type RoundArchive struct {
	Round      int         `json:"round"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	IsActive   bool        `json:"isActive"`
	Workouts   ArchivedSet `json:"workouts"`
	HealthData ArchivedSet `json:"healthData"`
	ArchivedAt time.Time   `json:"archivedAt"`
}

// ArchiveRoundData filters workouts and health data into the round's effective
// window, re-validates what is kept and builds the archive record.
func (t *Transitions) ArchiveRoundData(round *Round, workouts []WorkoutRecord, health []Record) (*RoundArchive, error) {
	if round == nil {
		t.journal.Error("archive failed, no round data", nil)
		return nil, &TransitionError{Op: "archive round", Err: ErrMissingRoundData}
	}
	if round.StartDate.IsZero() {
		t.journal.Error("archive failed, round has no start date", map[string]any{"round": round.Number})
		return nil, &TransitionError{Op: "archive round", Err: ErrMissingStartDate}
	}

	window := t.calc.EffectiveRange(round.StartDate, round.EndDate)

	wf := FilterByRound(t.calc, workouts, round.StartDate, round.EndDate)
	hf := FilterByRound(t.calc, health, round.StartDate, round.EndDate)

	archive := &RoundArchive{
		Round:     round.Number,
		StartDate: window.StartDate,
		EndDate:   window.EndDate,
		IsActive:  false,
		Workouts: ArchivedSet{
			Total:      len(wf.Filtered),
			Excluded:   len(wf.Excluded),
			RecordIDs:  wf.FilteredIDs(),
			Validation: t.validator.ClassifyWorkoutRecords(wf.Filtered, round.StartDate, round.EndDate),
		},
		HealthData: ArchivedSet{
			Total:      len(hf.Filtered),
			Excluded:   len(hf.Excluded),
			RecordIDs:  hf.FilteredIDs(),
			Validation: t.validator.ClassifyHealthRecords(hf.Filtered, round.StartDate, round.EndDate),
		},
		ArchivedAt: t.now(),
	}

	t.journal.Info("round archived", map[string]any{
		"round":             archive.Round,
		"workouts":          archive.Workouts.Total,
		"workouts_excluded": archive.Workouts.Excluded,
		"health":            archive.HealthData.Total,
		"health_excluded":   archive.HealthData.Excluded,
	})

	return archive, nil
}

type MembershipChange struct {
	Total          int      `json:"total"`
	InRound        int      `json:"inRound"`
	NowIncluded    int      `json:"nowIncluded"`
	NowExcluded    int      `json:"nowExcluded"`
	NowIncludedIDs []string `json:"nowIncludedIds"`
	NowExcludedIDs []string `json:"nowExcludedIds"`
}

type AffectedData struct {
	Workouts   MembershipChange `json:"workouts"`
	HealthData MembershipChange `json:"healthData"`
}

type StartDateChangeReport struct {
	OldBoundaries Span             `json:"oldBoundaries"`
	NewBoundaries Span             `json:"newBoundaries"`
	ShiftDays     int              `json:"shiftDays"`
	AffectedData  AffectedData     `json:"affectedData"`
	Workouts      ValidationResult `json:"workoutsValidation"`
	HealthData    ValidationResult `json:"healthValidation"`
	Warnings      []string         `json:"warnings"`
}

// HandleRoundStartDateChange recomputes round membership of all records for a moved
// start date. Records are matched by id between the old and the new window; the
// report says which ones changed classification so the caller can re-tag or re-query.
func (t *Transitions) HandleRoundStartDateChange(oldStart, newStart time.Time, workouts []WorkoutRecord, health []Record) (*StartDateChangeReport, error) {
	if oldStart.IsZero() || newStart.IsZero() {
		t.journal.Error("start date change rejected, missing date", nil)
		return nil, &TransitionError{Op: "change round start date", Err: ErrMissingStartDate}
	}

	oldWorkouts := FilterByRound(t.calc, workouts, oldStart, time.Time{})
	newWorkouts := FilterByRound(t.calc, workouts, newStart, time.Time{})
	oldHealth := FilterByRound(t.calc, health, oldStart, time.Time{})
	newHealth := FilterByRound(t.calc, health, newStart, time.Time{})

	report := &StartDateChangeReport{
		OldBoundaries: t.calc.RoundDateRange(oldStart),
		NewBoundaries: t.calc.RoundDateRange(newStart),
		ShiftDays:     t.calc.DaysBetween(oldStart, newStart),
		AffectedData: AffectedData{
			Workouts:   membershipChange(len(workouts), oldWorkouts.FilteredIDs(), newWorkouts.FilteredIDs()),
			HealthData: membershipChange(len(health), oldHealth.FilteredIDs(), newHealth.FilteredIDs()),
		},
		Workouts:   t.validator.ClassifyWorkoutRecords(newWorkouts.Filtered, newStart, time.Time{}),
		HealthData: t.validator.ClassifyHealthRecords(newHealth.Filtered, newStart, time.Time{}),
		Warnings:   make([]string, 0),
	}

	aw, ah := report.AffectedData.Workouts, report.AffectedData.HealthData
	if aw.NowExcluded > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d workouts are no longer within the round boundaries", aw.NowExcluded))
	}
	if aw.NowIncluded > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d workouts are now within the round boundaries", aw.NowIncluded))
	}
	if ah.NowExcluded > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d health entries are no longer within the round boundaries", ah.NowExcluded))
	}
	if ah.NowIncluded > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d health entries are now within the round boundaries", ah.NowIncluded))
	}

	t.journal.Info("round start date changed", map[string]any{
		"old_start":             t.calc.FormatDate(oldStart),
		"new_start":             t.calc.FormatDate(newStart),
		"workouts_now_excluded": aw.NowExcluded,
		"workouts_now_included": aw.NowIncluded,
		"health_now_excluded":   ah.NowExcluded,
		"health_now_included":   ah.NowIncluded,
	})

	return report, nil
}

func membershipChange(total int, before, after []string) MembershipChange {
	beforeSet := make(map[string]struct{}, len(before))
	for _, id := range before {
		beforeSet[id] = struct{}{}
	}
	afterSet := make(map[string]struct{}, len(after))
	for _, id := range after {
		afterSet[id] = struct{}{}
	}

	change := MembershipChange{
		Total:          total,
		InRound:        len(after),
		NowIncludedIDs: make([]string, 0),
		NowExcludedIDs: make([]string, 0),
	}
	for _, id := range before {
		if _, ok := afterSet[id]; !ok {
			change.NowExcludedIDs = append(change.NowExcludedIDs, id)
		}
	}
	for _, id := range after {
		if _, ok := beforeSet[id]; !ok {
			change.NowIncludedIDs = append(change.NowIncludedIDs, id)
		}
	}
	change.NowExcluded = len(change.NowExcludedIDs)
	change.NowIncluded = len(change.NowIncludedIDs)
	return change
}

type IntegrityIssue struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Rounds   []int    `json:"rounds,omitempty"`
	RecordID string   `json:"recordId,omitempty"`
	Count    int      `json:"count,omitempty"`
}

type IntegrityReport struct {
	IsValid bool             `json:"isValid"`
	Issues  []IntegrityIssue `json:"issues"`
}

func (r IntegrityReport) BySeverity(severity Severity) []IntegrityIssue {
	out := make([]IntegrityIssue, 0)
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateDataIntegrityAcrossRounds looks for overlapping rounds, workouts dated in no
// round, workouts tagged with a round other than the one their date falls in, and
// health entries outside every round. Only overlapping rounds make the report invalid.
func (t *Transitions) ValidateDataIntegrityAcrossRounds(rs []Round, workouts []WorkoutRecord, health []Record) IntegrityReport {
	report := IntegrityReport{
		Issues: make([]IntegrityIssue, 0),
	}

	type window struct {
		round int
		span  Span
	}
	windows := make([]window, 0, len(rs))
	for _, r := range rs {
		if r.StartDate.IsZero() {
			continue
		}
		windows = append(windows, window{round: r.Number, span: t.calc.EffectiveRange(r.StartDate, r.EndDate)})
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].span.StartDate.Before(windows[j].span.StartDate)
	})

	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			a, b := windows[i], windows[j]
			if !a.span.StartDate.After(b.span.EndDate) && !b.span.StartDate.After(a.span.EndDate) {
				report.Issues = append(report.Issues, IntegrityIssue{
					Type:     IssueOverlappingRounds,
					Severity: SeverityError,
					Message: fmt.Sprintf("round %d (%s - %s) overlaps round %d (%s - %s)",
						a.round, t.calc.FormatDate(a.span.StartDate), t.calc.FormatDate(a.span.EndDate),
						b.round, t.calc.FormatDate(b.span.StartDate), t.calc.FormatDate(b.span.EndDate)),
					Rounds: []int{a.round, b.round},
				})
			}
		}
	}

	roundForDate := func(raw string) (int, bool) {
		date, ok := t.calc.ParseDate(raw)
		if !ok {
			return 0, false
		}
		day := t.calc.StartOfDay(date)
		for _, w := range windows {
			if w.span.Contains(day) {
				return w.round, true
			}
		}
		return 0, false
	}

	for _, w := range workouts {
		implied, ok := roundForDate(w.RecordDate())
		if !ok {
			report.Issues = append(report.Issues, IntegrityIssue{
				Type:     IssueOrphanedWorkout,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("workout %s dated %q falls in no round", w.RecordID(), w.RecordDate()),
				RecordID: w.RecordID(),
			})
			continue
		}
		if stored := w.StoredRound(); stored != 0 && stored != implied {
			report.Issues = append(report.Issues, IntegrityIssue{
				Type:     IssueWorkoutRoundMismatch,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("workout %s stored in round %d, but its date falls in round %d", w.RecordID(), stored, implied),
				Rounds:   []int{stored, implied},
				RecordID: w.RecordID(),
			})
		}
	}

	orphanedHealth := 0
	for _, h := range health {
		if _, ok := roundForDate(h.RecordDate()); !ok {
			orphanedHealth++
		}
	}
	if orphanedHealth > 0 {
		report.Issues = append(report.Issues, IntegrityIssue{
			Type:     IssueOrphanedHealthData,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d health entries fall in no round", orphanedHealth),
			Count:    orphanedHealth,
		})
	}

	report.IsValid = len(report.BySeverity(SeverityError)) == 0

	data := map[string]any{
		"rounds":   len(windows),
		"errors":   len(report.BySeverity(SeverityError)),
		"warnings": len(report.BySeverity(SeverityWarning)),
		"info":     len(report.BySeverity(SeverityInfo)),
	}
	if report.IsValid {
		t.journal.Info("cross-round integrity checked", data)
	} else {
		t.journal.Error("cross-round integrity errors found", data)
	}

	return report
}
