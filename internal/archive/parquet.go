package archive

import (
	"fmt"

	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/workouts"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetWriterParallelism = 4

// WorkoutRow is one archived set as stored in the export file.
type WorkoutRow struct {
	ID       int64   `parquet:"name=id, type=INT64"`
	Round    int64   `parquet:"name=round, type=INT64"`
	Week     int64   `parquet:"name=week, type=INT64"`
	Date     string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Exercise string  `parquet:"name=exercise, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Kilos    float64 `parquet:"name=kilos, type=DOUBLE"`
	Reps     int64   `parquet:"name=reps, type=INT64"`
	Volume   float64 `parquet:"name=volume, type=DOUBLE"`

	// false for sets logged under the round but dated outside its archived range
	Archived bool `parquet:"name=archived, type=BOOLEAN"`
}

func workoutRows(archive *rounds.RoundArchive, sessions []workouts.Session) []WorkoutRow {
	archived := make(map[string]struct{}, len(archive.Workouts.RecordIDs))
	for _, id := range archive.Workouts.RecordIDs {
		archived[id] = struct{}{}
	}

	rows := make([]WorkoutRow, 0, len(sessions))
	for _, s := range sessions {
		_, ok := archived[s.RecordID()]
		rows = append(rows, WorkoutRow{
			ID:       int64(s.ID),
			Round:    int64(s.Round),
			Week:     int64(s.Week),
			Date:     s.Date,
			Exercise: s.Exercise,
			Kilos:    s.Kilos,
			Reps:     int64(s.Reps),
			Volume:   s.Volume(),
			Archived: ok,
		})
	}
	return rows
}

// MarshalWorkouts writes the sessions of an archived round as a Snappy compressed
// Parquet file.
func MarshalWorkouts(archive *rounds.RoundArchive, sessions []workouts.Session) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(WorkoutRow), parquetWriterParallelism)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range workoutRows(archive, sessions) {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write row %d: %w", row.ID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
