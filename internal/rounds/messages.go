package rounds

import (
	"fmt"
	"strings"
)

// FriendlyErrorMessage turns a validation result into one user-facing sentence about
// contextLabel (e.g. "health data"). It returns "" when there is nothing to report.
func FriendlyErrorMessage(result ValidationResult, contextLabel string) string {
	if contextLabel == "" {
		contextLabel = "data"
	}

	for _, e := range result.Errors {
		switch {
		case strings.Contains(e, ReasonMissingRoundStart):
			return fmt.Sprintf("Start a round to see your %s.", contextLabel)
		case strings.Contains(e, "missing date field"):
			return fmt.Sprintf("Some %s entries have no date and could not be shown.", contextLabel)
		case strings.Contains(e, "Round context"):
			return "Round information is not available right now, please refresh the page."
		}
	}
	if len(result.Errors) > 0 {
		return fmt.Sprintf("Your %s could not be loaded.", contextLabel)
	}

	outside := countContaining(result.Warnings, "outside round boundaries")
	misaligned := countContaining(result.Warnings, "but date falls in week")
	switch {
	case outside > 0 && misaligned > 0:
		return fmt.Sprintf(
			"%s outside the current round and %s under a different week than the date suggests.",
			pluralize(outside, contextLabel+" entry is", contextLabel+" entries are"),
			pluralize(misaligned, "workout is logged", "workouts are logged"),
		)
	case outside > 0:
		return fmt.Sprintf("%s outside the current round and hidden.",
			pluralize(outside, contextLabel+" entry is", contextLabel+" entries are"))
	case misaligned > 0:
		return fmt.Sprintf("%s under a different week than the date suggests.",
			pluralize(misaligned, "workout is logged", "workouts are logged"))
	}

	return ""
}

func countContaining(items []string, substr string) int {
	n := 0
	for _, item := range items {
		if strings.Contains(item, substr) {
			n++
		}
	}
	return n
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
