package tracker

import (
	"time"

	"github.com/calvinalkan/workboard/internal/board"
)

// ActivityWindow is how far back meetings and sessions count as recent.
const ActivityWindow = 7 * board.Day

// Stats are the management dashboard totals.
type Stats struct {
	OpenTasks           int
	BlockedTasks        int
	OverdueProjects     int
	OpenMeetingItems    int
	BlockedMeetingItems int
	OpenGroupItems      int
	BlockedGroupItems   int
	RecentMeetings      int
	RecentSessions      int
	PendingReports      int
}

// TotalOpen is the number of open tasks and action items.
func (s Stats) TotalOpen() int {
	return s.OpenTasks + s.OpenMeetingItems + s.OpenGroupItems
}

// TotalBlocked is the number of blocked tasks and action items.
func (s Stats) TotalBlocked() int {
	return s.BlockedTasks + s.BlockedMeetingItems + s.BlockedGroupItems
}

// TotalActivity is the number of meetings and sessions held recently.
func (s Stats) TotalActivity() int {
	return s.RecentMeetings + s.RecentSessions
}

// ComputeStats tallies snap at now. Archived projects and groups are left
// out; meetings always count.
func ComputeStats(snap *board.Snapshot, now time.Time) Stats {
	var s Stats

	recentSince := now.Add(-ActivityWindow)

	for _, team := range snap.Teams {
		for _, project := range team.Projects {
			if project.IsArchived {
				continue
			}

			if project.Status != board.ProjectDone {
				deadline, ok := board.ParseDate(project.Deadline)
				if ok && deadline.Before(now) {
					s.OverdueProjects++
				}
			}

			for _, task := range project.Tasks {
				if task.Status != board.TaskDone {
					s.OpenTasks++
				}

				if task.Status == board.TaskBlocked {
					s.BlockedTasks++
				}
			}
		}
	}

	for _, meeting := range snap.Meetings {
		if isRecent(meeting.Date, recentSince) {
			s.RecentMeetings++
		}

		open, blocked := countItems(meeting.ActionItems)
		s.OpenMeetingItems += open
		s.BlockedMeetingItems += blocked
	}

	for _, group := range snap.WorkingGroups {
		if group.Archived {
			continue
		}

		for _, session := range group.Sessions {
			if isRecent(session.Date, recentSince) {
				s.RecentSessions++
			}

			open, blocked := countItems(session.ActionItems)
			s.OpenGroupItems += open
			s.BlockedGroupItems += blocked
		}
	}

	for _, report := range snap.WeeklyReports {
		if !report.ManagerCheck {
			s.PendingReports++
		}
	}

	return s
}

func countItems(items []board.ActionItem) (int, int) {
	var open, blocked int

	for _, item := range items {
		if item.Status != board.ItemDone {
			open++
		}

		if item.Status == board.ItemBlocked {
			blocked++
		}
	}

	return open, blocked
}

func isRecent(date string, since time.Time) bool {
	t, ok := board.ParseDate(date)

	return ok && !t.Before(since)
}
