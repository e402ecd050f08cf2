package rounds

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

type JournalEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

// Journal is an append-only, in-memory diagnostics log of validation outcomes.
// Nothing reads it for control flow. Every entry is mirrored to the logrus logger.
type Journal struct {
	mu      sync.Mutex
	entries []JournalEntry
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewJournal creates an empty journal mirroring to logger (the standard logrus logger if nil).
func NewJournal(logger logrus.FieldLogger) *Journal {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Journal{
		entries: make([]JournalEntry, 0),
		logger:  logger,
		now:     time.Now,
	}
}

func (j *Journal) Info(msg string, data map[string]any) {
	j.append(LevelInfo, msg, data)
}

func (j *Journal) Warn(msg string, data map[string]any) {
	j.append(LevelWarn, msg, data)
}

func (j *Journal) Error(msg string, data map[string]any) {
	j.append(LevelError, msg, data)
}

func (j *Journal) append(level Level, msg string, data map[string]any) {
	entry := JournalEntry{
		Timestamp: j.now(),
		Level:     level,
		Message:   msg,
		Data:      data,
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	logEntry := j.logger.WithFields(logrus.Fields(data))
	switch level {
	case LevelError:
		logEntry.Errorf("[round consistency] %s", msg)
	case LevelWarn:
		logEntry.Warnf("[round consistency] %s", msg)
	default:
		logEntry.Debugf("[round consistency] %s", msg)
	}
}

// Entries returns a copy of all entries, oldest first.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// ByLevel returns the entries logged at the given level, oldest first.
func (j *Journal) ByLevel(level Level) []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]JournalEntry, 0)
	for _, e := range j.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make([]JournalEntry, 0)
}

// RecordValidation logs a summary of a validation outcome under the given label:
// error level if it failed, warn if it carries warnings, info otherwise.
func (j *Journal) RecordValidation(label string, result ValidationResult) {
	data := map[string]any{
		"errors":        len(result.Errors),
		"warnings":      len(result.Warnings),
		"total_records": result.Metadata.TotalRecords,
		"valid_records": result.Metadata.ValidRecords,
	}
	if n := len(result.Metadata.OutsideRoundData); n > 0 {
		data["outside_round"] = n
	}
	if n := len(result.Metadata.MisalignedData); n > 0 {
		data["misaligned"] = n
	}

	switch {
	case !result.IsValid:
		j.Error(label+" validation failed", data)
	case len(result.Warnings) > 0:
		j.Warn(label+" validation passed with warnings", data)
	default:
		j.Info(label+" validation passed", data)
	}
}
