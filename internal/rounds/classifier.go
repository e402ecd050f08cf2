package rounds

import (
	"fmt"
	"time"
)

const (
	ReasonMissingDate       = "Missing date field"
	ReasonOutsideRound      = "Outside round boundaries"
	ReasonMissingRoundStart = "Missing round start date"
)

// Validator classifies time-stamped records against round boundaries and
// records every outcome in the journal.
type Validator struct {
	calc    *Calculator
	journal *Journal
}

func NewValidator(calc *Calculator, journal *Journal) *Validator {
	return &Validator{
		calc:    calc,
		journal: journal,
	}
}

func (v *Validator) Calculator() *Calculator {
	return v.calc
}

func (v *Validator) Journal() *Journal {
	return v.journal
}

// ClassifyHealthRecords checks that every record has a date and flags the ones
// outside the round. Outside-round records are warnings only.
func (v *Validator) ClassifyHealthRecords(records []Record, roundStart, roundEnd time.Time) ValidationResult {
	result := v.classify("health", records, roundStart, roundEnd)
	v.journal.RecordValidation("health data", result)
	return result
}

// ClassifyWorkoutRecords does what ClassifyHealthRecords does and also compares the
// stored week of each workout with the week its date falls in. A mismatch is a
// warning: logged workouts are never re-tagged.
func (v *Validator) ClassifyWorkoutRecords(records []WorkoutRecord, roundStart, roundEnd time.Time) ValidationResult {
	result := v.classify("workout", Records(records), roundStart, roundEnd)
	if roundStart.IsZero() {
		v.journal.RecordValidation("workouts", result)
		return result
	}

	for _, rec := range records {
		stored := rec.StoredWeek()
		if stored == 0 {
			continue
		}
		date, ok := v.calc.ParseDate(rec.RecordDate())
		if !ok {
			continue
		}
		calculated, ok := v.calc.WeekNumberForDate(roundStart, date)
		if !ok || calculated == stored {
			continue
		}

		result.addWarning(fmt.Sprintf(
			"Workout %s stored as week %d, but date falls in week %d",
			rec.RecordID(), stored, calculated,
		))
		result.Metadata.MisalignedData = append(result.Metadata.MisalignedData, MisalignedRecord{
			ID:             rec.RecordID(),
			Date:           rec.RecordDate(),
			StoredWeek:     stored,
			CalculatedWeek: calculated,
		})
	}

	v.journal.RecordValidation("workouts", result)
	return result
}

func (v *Validator) classify(kind string, records []Record, roundStart, roundEnd time.Time) ValidationResult {
	result := newResult()
	result.Metadata.TotalRecords = len(records)

	if roundStart.IsZero() {
		result.addError(ReasonMissingRoundStart)
		return result
	}
	result.Metadata.RoundRange = v.calc.EffectiveRange(roundStart, roundEnd)

	for _, rec := range records {
		rawDate := rec.RecordDate()
		if rawDate == "" {
			result.addError(fmt.Sprintf("%s record %s is missing date field", kind, rec.RecordID()))
			continue
		}

		// malformed dates parse to the zero time and land outside the round
		date, _ := v.calc.ParseDate(rawDate)
		if !v.calc.IsDateInRound(date, roundStart, roundEnd) {
			result.addWarning(fmt.Sprintf("%s record %s dated %s is outside round boundaries", kind, rec.RecordID(), rawDate))
			result.Metadata.OutsideRoundData = append(result.Metadata.OutsideRoundData, OutsideRecord{
				ID:     rec.RecordID(),
				Date:   rawDate,
				Reason: ReasonOutsideRound,
			})
			continue
		}

		result.Metadata.ValidRecords++
	}

	return result
}

type ExcludedRecord[T Record] struct {
	Record T      `json:"record"`
	Reason string `json:"reason"`
}

type FilterResult[T Record] struct {
	Filtered []T                 `json:"filtered"`
	Excluded []ExcludedRecord[T] `json:"excluded"`
}

// FilteredIDs returns the ids of the records kept by the filter.
func (f FilterResult[T]) FilteredIDs() []string {
	ids := make([]string, 0, len(f.Filtered))
	for _, r := range f.Filtered {
		ids = append(ids, r.RecordID())
	}
	return ids
}

// FilterByRound partitions records into the ones within the round window and the
// excluded rest, each with its reason. Without a round start everything is excluded.
func FilterByRound[T Record](calc *Calculator, records []T, roundStart, roundEnd time.Time) FilterResult[T] {
	res := FilterResult[T]{
		Filtered: make([]T, 0, len(records)),
		Excluded: make([]ExcludedRecord[T], 0),
	}

	if roundStart.IsZero() {
		for _, rec := range records {
			res.Excluded = append(res.Excluded, ExcludedRecord[T]{Record: rec, Reason: ReasonMissingRoundStart})
		}
		return res
	}

	for _, rec := range records {
		rawDate := rec.RecordDate()
		if rawDate == "" {
			res.Excluded = append(res.Excluded, ExcludedRecord[T]{Record: rec, Reason: ReasonMissingDate})
			continue
		}
		date, _ := calc.ParseDate(rawDate)
		if !calc.IsDateInRound(date, roundStart, roundEnd) {
			res.Excluded = append(res.Excluded, ExcludedRecord[T]{Record: rec, Reason: ReasonOutsideRound})
			continue
		}
		res.Filtered = append(res.Filtered, rec)
	}

	return res
}

// RoundContext is the round state a consumer renders against.
// Zero CurrentRound/CurrentWeek and a zero RoundStartDate mean "not present".
type RoundContext struct {
	CurrentRound   int       `json:"currentRound"`
	CurrentWeek    int       `json:"currentWeek"`
	RoundStartDate time.Time `json:"roundStartDate"`
	RoundEndDate   time.Time `json:"roundEndDate"`
	IsActive       bool      `json:"isActive"`
}

// ValidateRoundContext reports missing fields as errors. Out-of-range values and an
// inactive round are only warnings, they may reflect transient UI state.
func (v *Validator) ValidateRoundContext(rc *RoundContext) ValidationResult {
	result := newResult()
	if rc == nil {
		result.addError("Round context is missing")
		v.journal.RecordValidation("round context", result)
		return result
	}

	if rc.CurrentRound == 0 {
		result.addError("Round context is missing current round")
	} else if rc.CurrentRound < 1 {
		result.addWarning(fmt.Sprintf("Current round %d is less than 1", rc.CurrentRound))
	}

	if rc.CurrentWeek == 0 {
		result.addError("Round context is missing current week")
	} else if rc.CurrentWeek < 1 || rc.CurrentWeek > WeeksPerRound {
		result.addWarning(fmt.Sprintf("Current week %d is outside the valid range 1-%d", rc.CurrentWeek, WeeksPerRound))
	}

	if rc.RoundStartDate.IsZero() {
		result.addError(ReasonMissingRoundStart)
	} else {
		result.Metadata.RoundRange = v.calc.EffectiveRange(rc.RoundStartDate, rc.RoundEndDate)
	}

	if !rc.IsActive {
		result.addWarning(fmt.Sprintf("Round %d is not active", rc.CurrentRound))
	}

	v.journal.RecordValidation("round context", result)
	return result
}

type ConsistencyInput struct {
	RoundContext *RoundContext
	HealthData   []Record
	Workouts     []WorkoutRecord
}

type ConsistencyReport struct {
	RoundContext ValidationResult  `json:"roundContext"`
	HealthData   *ValidationResult `json:"healthData,omitempty"`
	Workouts     *ValidationResult `json:"workouts,omitempty"`
	Overall      ValidationResult  `json:"overall"`
}

// ValidateDataConsistency validates the round context first and stops there if it is
// invalid; otherwise it classifies health data and workouts and aggregates everything
// into Overall.
func (v *Validator) ValidateDataConsistency(in ConsistencyInput) ConsistencyReport {
	report := ConsistencyReport{
		RoundContext: v.ValidateRoundContext(in.RoundContext),
	}

	overall := newResult()
	overall.Errors = append(overall.Errors, report.RoundContext.Errors...)
	overall.Warnings = append(overall.Warnings, report.RoundContext.Warnings...)
	if !report.RoundContext.IsValid {
		overall.IsValid = false
		report.Overall = overall
		v.journal.RecordValidation("data consistency", overall)
		return report
	}

	rc := in.RoundContext
	health := v.ClassifyHealthRecords(in.HealthData, rc.RoundStartDate, rc.RoundEndDate)
	workouts := v.ClassifyWorkoutRecords(in.Workouts, rc.RoundStartDate, rc.RoundEndDate)
	report.HealthData = &health
	report.Workouts = &workouts

	overall.Metadata.RoundRange = report.RoundContext.Metadata.RoundRange
	for _, r := range []ValidationResult{health, workouts} {
		overall.Errors = append(overall.Errors, r.Errors...)
		overall.Warnings = append(overall.Warnings, r.Warnings...)
		overall.Metadata.TotalRecords += r.Metadata.TotalRecords
		overall.Metadata.ValidRecords += r.Metadata.ValidRecords
		overall.Metadata.OutsideRoundData = append(overall.Metadata.OutsideRoundData, r.Metadata.OutsideRoundData...)
		overall.Metadata.MisalignedData = append(overall.Metadata.MisalignedData, r.Metadata.MisalignedData...)
	}
	overall.IsValid = health.IsValid && workouts.IsValid

	report.Overall = overall
	v.journal.RecordValidation("data consistency", overall)
	return report
}
