package rounds

// Record is anything time-stamped by a calendar date: a workout session or a health entry.
// RecordDate returns the date exactly as stored (ISO datetime or date-only), "" when missing.
type Record interface {
	RecordID() string
	RecordDate() string
}

// WorkoutRecord is a record tagged with the round and week it was logged under (0 = unset).
type WorkoutRecord interface {
	Record
	StoredRound() int
	StoredWeek() int
}

// Records widens a typed slice into a slice of Record.
func Records[T Record](items []T) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

// WorkoutRecords widens a typed slice into a slice of WorkoutRecord.
func WorkoutRecords[T WorkoutRecord](items []T) []WorkoutRecord {
	out := make([]WorkoutRecord, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

// ValidationResult is returned by every validator. Errors block further processing
// of the result, warnings are advisory.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	TotalRecords     int                `json:"totalRecords"`
	ValidRecords     int                `json:"validRecords"`
	OutsideRoundData []OutsideRecord    `json:"outsideRoundData,omitempty"`
	MisalignedData   []MisalignedRecord `json:"misalignedData,omitempty"`
	RoundRange       Span               `json:"roundRange"`
}

type OutsideRecord struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type MisalignedRecord struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	StoredWeek     int    `json:"storedWeek"`
	CalculatedWeek int    `json:"calculatedWeek"`
}

func newResult() ValidationResult {
	return ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

func (r *ValidationResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
