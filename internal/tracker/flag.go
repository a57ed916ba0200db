// Package tracker derives portfolio views from teams: stale and urgent
// project flags, weighted progress, task breakdowns and dashboard totals.
package tracker

import (
	"slices"
	"time"

	"github.com/calvinalkan/workboard/internal/board"
)

const (
	// StaleAfter is how long a project may go without an audit entry.
	StaleAfter = 14 * board.Day

	// UrgentWithin is how close a deadline must be to flag a project.
	UrgentWithin = 7 * board.Day
)

// Flagged is a project that is stale, urgent, or both.
type Flagged struct {
	Project  board.Project
	TeamName string
	IsStale  bool
	IsUrgent bool

	// DaysSinceUpdate is nil when the project has no dated audit entry.
	DaysSinceUpdate *int

	// DaysUntilDeadline is nil when the deadline does not parse. It is
	// negative for overdue projects.
	DaysUntilDeadline *int
}

// FlagProjects returns the open projects that need attention at now.
//
// Archived and done projects are ignored. A project is stale when its
// latest audit entry is older than [StaleAfter], or when it has none. It is
// urgent when its deadline falls on or before now + [UrgentWithin].
//
// Urgent projects come first, nearest deadline first; everything else keeps
// team/project order.
func FlagProjects(teams []board.Team, now time.Time) []Flagged {
	staleBefore := now.Add(-StaleAfter)
	urgentBy := now.Add(UrgentWithin)

	var out []Flagged

	for _, team := range teams {
		for _, project := range team.Projects {
			if project.IsArchived || project.Status == board.ProjectDone {
				continue
			}

			f := Flagged{Project: project, TeamName: team.Name}

			lastUpdate, ok := LastUpdate(project)
			if ok {
				days := board.DaysBetween(lastUpdate, now)
				f.DaysSinceUpdate = &days
				f.IsStale = lastUpdate.Before(staleBefore)
			} else {
				f.IsStale = true
			}

			deadline, ok := board.ParseDate(project.Deadline)
			if ok {
				days := board.DaysBetween(now, deadline)
				f.DaysUntilDeadline = &days
				f.IsUrgent = !deadline.After(urgentBy)
			}

			if f.IsStale || f.IsUrgent {
				out = append(out, f)
			}
		}
	}

	slices.SortStableFunc(out, compareFlagged)

	return out
}

func compareFlagged(a, b Flagged) int {
	switch {
	case a.IsUrgent && !b.IsUrgent:
		return -1
	case !a.IsUrgent && b.IsUrgent:
		return 1
	case a.IsUrgent && b.IsUrgent:
		// Urgent implies a parsed deadline, so both counts are set.
		return *a.DaysUntilDeadline - *b.DaysUntilDeadline
	default:
		return 0
	}
}

// LastUpdate returns the latest parseable audit entry date of p.
func LastUpdate(p board.Project) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)

	for _, entry := range p.AuditLog {
		t, ok := board.ParseDate(entry.Date)
		if !ok {
			continue
		}

		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}

	return latest, found
}
