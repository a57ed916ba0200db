package tracker_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/workboard/internal/board"
	"github.com/calvinalkan/workboard/internal/tracker"
)

func Test_ComputeStats_Tallies_Snapshot(t *testing.T) {
	t.Parallel()

	snap := &board.Snapshot{
		Teams: []board.Team{{
			Projects: []board.Project{
				{
					Status:   board.ProjectActive,
					Deadline: day(-1),
					Tasks: []board.Task{
						{Status: board.TaskTodo},
						{Status: board.TaskBlocked},
						{Status: board.TaskDone},
					},
				},
				{Status: board.ProjectDone, Deadline: day(-10), Tasks: []board.Task{{Status: board.TaskInProgress}}},
				{Status: board.ProjectActive, Deadline: "not a date"},
				{IsArchived: true, Status: board.ProjectActive, Deadline: day(-5), Tasks: []board.Task{{Status: board.TaskBlocked}}},
			},
		}},
		Meetings: []board.Meeting{
			{Date: day(-2), ActionItems: []board.ActionItem{{Status: board.ItemToStart}, {Status: board.ItemBlocked}, {Status: board.ItemDone}}},
			{Date: day(-30), ActionItems: []board.ActionItem{{Status: board.ItemOngoing}}},
		},
		WorkingGroups: []board.WorkingGroup{
			{Sessions: []board.Session{
				{Date: day(0), ActionItems: []board.ActionItem{{Status: board.ItemBlocked}}},
				{Date: day(-8), ActionItems: []board.ActionItem{{Status: board.ItemDone}}},
			}},
			{Archived: true, Sessions: []board.Session{
				{Date: day(0), ActionItems: []board.ActionItem{{Status: board.ItemToStart}}},
			}},
		},
		WeeklyReports: []board.WeeklyReport{{ManagerCheck: true}, {}, {}},
	}

	got := tracker.ComputeStats(snap, now)

	want := tracker.Stats{
		OpenTasks:           3,
		BlockedTasks:        1,
		OverdueProjects:     1,
		OpenMeetingItems:    3,
		BlockedMeetingItems: 1,
		OpenGroupItems:      1,
		BlockedGroupItems:   1,
		RecentMeetings:      1,
		RecentSessions:      1,
		PendingReports:      2,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	if got.TotalOpen() != 7 {
		t.Errorf("TotalOpen=%d, want 7", got.TotalOpen())
	}

	if got.TotalBlocked() != 3 {
		t.Errorf("TotalBlocked=%d, want 3", got.TotalBlocked())
	}

	if got.TotalActivity() != 2 {
		t.Errorf("TotalActivity=%d, want 2", got.TotalActivity())
	}
}

func Test_ComputeStats_Empty_Snapshot(t *testing.T) {
	t.Parallel()

	got := tracker.ComputeStats(&board.Snapshot{}, now)

	if diff := cmp.Diff(tracker.Stats{}, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}
