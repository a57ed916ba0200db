package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/workboard/internal/tracker"
)

// StatsCmd returns the stats command.
func StatsCmd(a *app) *Command {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	addAsOfFlag(fs)

	return &Command{
		Flags: fs,
		Usage: "stats [flags]",
		Short: "Show dashboard totals",
		Long:  "Show open and blocked work, overdue projects, recent activity and pending weekly reports.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execStats(o, a, fs)
		},
	}
}

func execStats(o *IO, a *app, fs *flag.FlagSet) error {
	now, err := a.asOf(fs)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}

	s := tracker.ComputeStats(st.Snapshot(), now)

	rows := []struct {
		label string
		value int
	}{
		{"open_tasks", s.OpenTasks},
		{"blocked_tasks", s.BlockedTasks},
		{"overdue_projects", s.OverdueProjects},
		{"open_meeting_items", s.OpenMeetingItems},
		{"blocked_meeting_items", s.BlockedMeetingItems},
		{"open_group_items", s.OpenGroupItems},
		{"blocked_group_items", s.BlockedGroupItems},
		{"recent_meetings", s.RecentMeetings},
		{"recent_sessions", s.RecentSessions},
		{"pending_reports", s.PendingReports},
		{"total_open", s.TotalOpen()},
		{"total_blocked", s.TotalBlocked()},
		{"total_activity", s.TotalActivity()},
	}

	for _, row := range rows {
		o.Printf("%s=%d\n", row.label, row.value)
	}

	return nil
}
