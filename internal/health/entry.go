package health

// Entry is one day of health data. The date doubles as the record id since there is
// at most one entry per user and day.
type Entry struct {
	Date   string  `json:"date"`
	Steps  int     `json:"steps"`
	Weight float64 `json:"weight"`
	Source string  `json:"source,omitempty"`
}

func (e Entry) RecordID() string {
	return e.Date
}

func (e Entry) RecordDate() string {
	return e.Date
}
