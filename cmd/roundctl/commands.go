package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/roundtracker/internal/rounds"
)

var (
	checkStart string
	checkEnd   string
	checkKind  string
)

// fileRecord is one entry of the JSON file passed to check. Round and week are
// only used for workouts.
type fileRecord struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Round int    `json:"round"`
	Week  int    `json:"week"`
}

func (r fileRecord) RecordID() string   { return r.ID }
func (r fileRecord) RecordDate() string { return r.Date }
func (r fileRecord) StoredRound() int   { return r.Round }
func (r fileRecord) StoredWeek() int    { return r.Week }

func newWeeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks <start-date>",
		Short: "Print the 12 weeks of a round starting at start-date",
		Args:  cobra.ExactArgs(1),
		RunE:  runWeeksCmd,
	}
}

func runWeeksCmd(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	start, ok := calc.ParseDate(args[0])
	if !ok {
		return fmt.Errorf("malformed start date: %s", args[0])
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tFROM\tTO")
	for _, w := range calc.AllWeeks(start) {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", w.Week, calc.FormatDate(w.StartDate), calc.FormatDate(w.EndDate))
	}
	return tw.Flush()
}

func newWeekOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week-of <start-date> <date>",
		Short: "Print the round week a date falls into",
		Args:  cobra.ExactArgs(2),
		RunE:  runWeekOfCmd,
	}
}

func runWeekOfCmd(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	start, ok := calc.ParseDate(args[0])
	if !ok {
		return fmt.Errorf("malformed start date: %s", args[0])
	}
	date, ok := calc.ParseDate(args[1])
	if !ok {
		return fmt.Errorf("malformed date: %s", args[1])
	}

	week, ok := calc.WeekNumberForDate(start, date)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is outside the round starting %s\n", calc.FormatDate(date), calc.FormatDate(start))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "week %d\n", week)
	return nil
}

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <records.json>",
		Short: "Classify a JSON array of records against a round",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheckCmd,
	}
	checkCmd.Flags().StringVar(&checkStart, "start", "", "round start date")
	checkCmd.Flags().StringVar(&checkEnd, "end", "", "explicit round end date")
	checkCmd.Flags().StringVar(&checkKind, "kind", "workouts", "record kind [workouts | health]")
	_ = checkCmd.MarkFlagRequired("start")
	return checkCmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	start, ok := calc.ParseDate(checkStart)
	if !ok {
		return fmt.Errorf("malformed start date: %s", checkStart)
	}
	end, _ := calc.ParseDate(checkEnd)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}

	// journal entries only matter when something failed
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.ErrorLevel)
	validator := rounds.NewValidator(calc, rounds.NewJournal(logger))

	var (
		result rounds.ValidationResult
		label  string
	)
	switch checkKind {
	case "workouts":
		result = validator.ClassifyWorkoutRecords(rounds.WorkoutRecords(records), start, end)
		label = "workout"
	case "health":
		result = validator.ClassifyHealthRecords(rounds.Records(records), start, end)
		label = "health data"
	default:
		return fmt.Errorf("unknown record kind: %s", checkKind)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if msg := rounds.FriendlyErrorMessage(result, label); msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	return nil
}
