// Package query compiles listing parameters into a predicate, an
// ordering, and a page window. The same clause list backs both the row
// query and the count query, so the two can never disagree about which
// tasks match.
package query

import (
	"strings"
	"time"
)

// PageSize is the fixed number of tasks per listing page.
const PageSize = 50

// Filter sentinels and option values accepted from the outside.
const (
	All = "all"

	StatusActive    = "active"
	StatusCompleted = "completed"

	DueOverdue = "overdue"
	DueToday   = "today"
	DueWeek    = "week"

	SortDefault   = "default"
	SortDueDate   = "due_date"
	SortCreatedAt = "created_at"
	SortPriority  = "priority"
	SortAlpha     = "alpha"
)

// Options holds the raw listing parameters. Zero values mean "no
// constraint"; an empty or "all" filter is skipped.
type Options struct {
	Category string
	Status   string
	Priority string
	Due      string
	Search   string
	Sort     string
	Page     int
}

// Clause is a single predicate. Clauses compose with logical AND.
type Clause struct {
	Expr string
	Args []any
}

// Plan is a compiled (predicate, ordering, window) triple. The row
// query applies all three parts, the count query only Clauses.
type Plan struct {
	Clauses []Clause
	OrderBy string
	Page    int
	Limit   int
	Offset  int
}

// Compile turns opts into a Plan. Due-window predicates are anchored to
// now's calendar date, so callers pass time.Now() in production and a
// pinned clock in tests.
func Compile(opts Options, now time.Time) Plan {
	page := opts.Page
	if page < 1 {
		page = 1
	}

	plan := Plan{
		OrderBy: orderBy(opts.Sort),
		Page:    page,
		Limit:   PageSize,
		Offset:  (page - 1) * PageSize,
	}

	if opts.Category != "" && opts.Category != All {
		plan.where("category = ?", opts.Category)
	}

	switch opts.Status {
	case StatusActive:
		plan.where("completed = ?", false)
	case StatusCompleted:
		plan.where("completed = ?", true)
	}

	if opts.Priority != "" && opts.Priority != All {
		plan.where("priority = ?", opts.Priority)
	}

	today := Midnight(now)
	switch opts.Due {
	case DueOverdue:
		plan.where("due_date IS NOT NULL AND due_date < ?", today)
	case DueToday:
		plan.where("due_date >= ? AND due_date < ?", today, today.AddDate(0, 0, 1))
	case DueWeek:
		// Inclusive window [today, today+7 days].
		plan.where("due_date >= ? AND due_date < ?", today, today.AddDate(0, 0, 8))
	}

	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + EscapeLike(search) + "%"
		plan.where(`(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	return plan
}

func (p *Plan) where(expr string, args ...any) {
	p.Clauses = append(p.Clauses, Clause{Expr: expr, Args: args})
}

// orderBy maps a sort mode to its ORDER BY expression. Unknown modes
// fall back to the default ordering.
func orderBy(sort string) string {
	switch sort {
	case SortDueDate:
		return "due_date ASC NULLS LAST, created_at DESC"
	case SortCreatedAt:
		return "created_at DESC"
	case SortPriority:
		return "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END, created_at DESC"
	case SortAlpha:
		return "title COLLATE NOCASE ASC"
	default:
		return "completed ASC, created_at DESC"
	}
}

// EscapeLike makes s safe to embed in a LIKE pattern so that %, _ and
// the escape character itself match literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Midnight truncates t to its calendar date and anchors it at UTC
// midnight. Every stored due date uses the same anchor, which keeps
// date comparisons independent of the server's time zone.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TotalPages returns ceil(total/PageSize); zero matches yield zero
// pages.
func TotalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}
