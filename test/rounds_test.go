package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/2beens/roundtracker/internal/archive"
	"github.com/2beens/roundtracker/internal/health"
	"github.com/2beens/roundtracker/internal/program"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/stats"
	"github.com/2beens/roundtracker/internal/workouts"
)

func newFingerprint() string {
	return "it-" + uuid.NewString()
}

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(rounds.DateLayout)
}

func (s *IntegrationTestSuite) request(method, path, fingerprint string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Fingerprint", fingerprint)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) decode(data []byte, v any) {
	s.Require().NoError(json.Unmarshal(data, v), string(data))
}

func (s *IntegrationTestSuite) TestRounds_NoRound() {
	fp := newFingerprint()

	status, body := s.request("GET", "/rounds/current", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var current program.CurrentResponse
	s.decode(body, &current)
	s.Nil(current.Round)
	s.Equal(rounds.StatusNotStarted, current.Status)
	s.Require().NotNil(current.Fallback)

	status, _ = s.request("POST", "/rounds/current/end", fp, nil)
	s.Equal(http.StatusNotFound, status)

	status, _ = s.request("POST", "/workouts", fp, map[string]any{"exercise": "squat", "kilos": 80, "reps": 5})
	s.Equal(http.StatusConflict, status)

	status, _ = s.request("POST", "/health/sync", fp, nil)
	s.Equal(http.StatusConflict, status)

	status, _ = s.request("GET", "/rounds/current", "", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestRounds_Lifecycle() {
	fp := newFingerprint()

	status, body := s.request("POST", "/rounds/start", fp, program.DateRequest{StartDate: daysAgo(10)})
	s.Require().Equal(http.StatusCreated, status, string(body))
	var started rounds.Round
	s.decode(body, &started)
	s.Equal(1, started.Number)
	s.True(started.IsActive)

	status, _ = s.request("POST", "/rounds/start", fp, program.DateRequest{StartDate: daysAgo(1)})
	s.Equal(http.StatusConflict, status)

	status, body = s.request("GET", "/rounds/current", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var current program.CurrentResponse
	s.decode(body, &current)
	s.Require().NotNil(current.Context)
	s.Equal(rounds.StatusActive, current.Status)
	s.Equal(2, current.Context.CurrentWeek)

	status, body = s.request("GET", "/rounds/current/weeks", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var weeks program.RoundWeeks
	s.decode(body, &weeks)
	s.Len(weeks.Weeks, rounds.WeeksPerRound)
	s.Equal(2, weeks.CurrentWeek)

	for _, ns := range []workouts.NewSession{
		{Exercise: "squat", Kilos: 80, Reps: 5, Date: daysAgo(9)},
		{Exercise: "squat", Kilos: 85, Reps: 5, Date: daysAgo(2)},
		{Exercise: "bench", Kilos: 60, Reps: 8, Date: daysAgo(2)},
	} {
		status, body = s.request("POST", "/workouts", fp, ns)
		s.Require().Equal(http.StatusCreated, status, string(body))
	}

	status, _ = s.request("POST", "/workouts", fp, workouts.NewSession{Exercise: "squat", Kilos: 80, Reps: 5, Date: daysAgo(30)})
	s.Equal(http.StatusBadRequest, status)

	status, body = s.request("GET", "/workouts?round=1", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var listed workouts.ListResponse
	s.decode(body, &listed)
	s.Equal(3, listed.Total)

	status, body = s.request("GET", "/rounds/current/consistency", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var consistency program.Consistency
	s.decode(body, &consistency)
	s.True(consistency.Report.Overall.IsValid)
	s.Empty(consistency.Report.Overall.Metadata.MisalignedData)

	status, body = s.request("POST", "/rounds/current/end", fp, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var ended rounds.RoundArchive
	s.decode(body, &ended)
	s.Equal(1, ended.Round)
	s.False(ended.IsActive)
	s.Equal(3, ended.Workouts.Total)
	s.Len(ended.Workouts.RecordIDs, 3)

	status, body = s.request("GET", "/rounds/1/archive.parquet", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	fr, err := reader.NewParquetReader(parquetbuffer.NewBufferFileFromBytes(body), new(archive.WorkoutRow), 1)
	s.Require().NoError(err)
	defer fr.ReadStop()
	s.Equal(int64(3), fr.GetNumRows())
	rows := make([]archive.WorkoutRow, fr.GetNumRows())
	s.Require().NoError(fr.Read(&rows))
	for _, row := range rows {
		s.Equal(int64(1), row.Round)
		s.True(row.Archived)
	}

	status, _ = s.request("GET", "/rounds/7/archive.parquet", fp, nil)
	s.Equal(http.StatusNotFound, status)

	status, body = s.request("POST", "/rounds/start", fp, program.DateRequest{StartDate: daysAgo(0)})
	s.Require().Equal(http.StatusCreated, status, string(body))
	var second rounds.Round
	s.decode(body, &second)
	s.Equal(2, second.Number)

	status, body = s.request("GET", "/rounds", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var all []rounds.Round
	s.decode(body, &all)
	s.Len(all, 2)
}

func (s *IntegrationTestSuite) TestRounds_ChangeStartDateAndRestart() {
	fp := newFingerprint()

	status, body := s.request("POST", "/rounds/start", fp, program.DateRequest{StartDate: daysAgo(20)})
	s.Require().Equal(http.StatusCreated, status, string(body))

	status, body = s.request("POST", "/workouts", fp, workouts.NewSession{Exercise: "row", Kilos: 50, Reps: 10, Date: daysAgo(18)})
	s.Require().Equal(http.StatusCreated, status, string(body))
	var logged workouts.Session
	s.decode(body, &logged)
	s.Equal(1, logged.Week)

	status, body = s.request("PUT", "/rounds/current/start-date", fp, program.DateRequest{StartDate: daysAgo(13)})
	s.Require().Equal(http.StatusOK, status, string(body))
	var change program.StartDateChange
	s.decode(body, &change)
	s.Require().NotNil(change.Report)
	s.Equal(7, change.Report.ShiftDays)
	s.Equal(1, change.Report.AffectedData.Workouts.NowExcluded)
	s.Equal([]string{fmt.Sprint(logged.ID)}, change.Report.AffectedData.Workouts.NowExcludedIDs)

	status, body = s.request("GET", "/rounds/integrity", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(body), fmt.Sprint(logged.ID))

	status, body = s.request("POST", "/rounds/current/restart", fp, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var restarted rounds.Round
	s.decode(body, &restarted)
	s.Equal(1, restarted.Number)
	s.False(restarted.IsActive)
	s.True(restarted.StartDate.IsZero())

	status, body = s.request("GET", "/rounds/journal?level=warn", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(body), "round restarted")
}

func (s *IntegrationTestSuite) TestHealth_SyncAndStats() {
	fp := newFingerprint()

	status, body := s.request("POST", "/rounds/start", fp, program.DateRequest{StartDate: daysAgo(6)})
	s.Require().Equal(http.StatusCreated, status, string(body))

	s.bridge.setEntries([]health.Entry{
		{Date: daysAgo(5), Steps: 10000, Weight: 80.5},
		{Date: daysAgo(4), Steps: 5000, Weight: 80.1},
		{Date: daysAgo(40), Steps: 12000, Weight: 82},
		{Date: "", Steps: 100},
	})

	status, body = s.request("POST", "/health/sync", fp, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var synced health.SyncResult
	s.decode(body, &synced)
	s.Equal(1, synced.Round)
	s.Equal(4, synced.Fetched)
	s.Equal(2, synced.Stored)
	s.False(synced.Validation.IsValid)
	s.NotEmpty(synced.Message)

	// same range again, served from the redis cache
	status, _ = s.request("POST", "/health/sync", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(1, s.bridge.requestCount())

	status, body = s.request("GET", "/health", fp, nil)
	s.Require().Equal(http.StatusOK, status)
	var listed health.ListResponse
	s.decode(body, &listed)
	s.Equal(2, listed.Total)

	status, body = s.request("POST", "/workouts", fp, workouts.NewSession{Exercise: "deadlift", Kilos: 120, Reps: 3, Date: daysAgo(5)})
	s.Require().Equal(http.StatusCreated, status, string(body))

	status, body = s.request("GET", "/rounds/current/stats", fp, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var resp stats.Response
	s.decode(body, &resp)
	s.Nil(resp.Fallback)
	s.Require().NotNil(resp.Stats)
	s.Equal(1, resp.Stats.TotalSessions)
	s.Equal(360.0, resp.Stats.TotalVolume)
	s.Equal(7500.0, resp.Stats.AverageSteps)
}
