package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskwell/internal/query"
)

// ParseDueDate parses the due date formats accepted by the web form
// and the CLI. The result is a calendar date anchored at UTC midnight.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-01-15", what HTML date inputs submit)
// - X days (e.g., "3 days", "1 day")
// - X weeks (e.g., "2 weeks", "1 week")
// An empty input means no due date.
func ParseDueDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if dueDate, err := parseISODate(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseRelativeDate(input); err == nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, X days, or X weeks")
}

// parseISODate parses yyyy-mm-dd
func parseISODate(input string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", input)
	if err != nil {
		return nil, fmt.Errorf("invalid date format")
	}
	dueDate := query.Midnight(t)
	return &dueDate, nil
}

// parseRelativeDate parses relative formats like "3 days" or "2 weeks"
func parseRelativeDate(input string) (*time.Time, error) {
	input = strings.ToLower(input)

	relativeRegex := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)
	matches := relativeRegex.FindStringSubmatch(input)

	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	today := query.Midnight(time.Now())

	switch matches[2] {
	case "day", "days":
		if amount < 1 || amount > 365 { // Max 1 year in days
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		dueDate := today.AddDate(0, 0, amount)
		return &dueDate, nil

	case "week", "weeks":
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		dueDate := today.AddDate(0, 0, amount*7)
		return &dueDate, nil

	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

// FormatDueDate formats a due date for display
func FormatDueDate(dueDate *time.Time) string {
	if dueDate == nil {
		return ""
	}

	today := query.Midnight(time.Now())
	daysDiff := int(dueDate.Sub(today).Hours() / 24)

	// Always show the actual date to avoid confusion
	dateStr := dueDate.Format("2006-01-02")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("due %s", dateStr)
	}
}
