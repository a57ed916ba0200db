package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/workboard/internal/tracker"
)

// StaleCmd returns the stale command.
func StaleCmd(a *app) *Command {
	fs := flag.NewFlagSet("stale", flag.ContinueOnError)
	fs.Bool("json", false, "Print JSON")
	addAsOfFlag(fs)

	return &Command{
		Flags: fs,
		Usage: "stale [flags]",
		Short: "List stale and urgent projects",
		Long: `List open projects that need attention.

A project is stale when nothing was logged for it in 14 days, and urgent
when its deadline is at most 7 days away (or already passed). Urgent
projects are listed first, nearest deadline first.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execStale(o, a, fs)
		},
	}
}

func execStale(o *IO, a *app, fs *flag.FlagSet) error {
	now, err := a.asOf(fs)
	if err != nil {
		return err
	}

	asJSON, _ := fs.GetBool("json")

	st, err := a.openStore()
	if err != nil {
		return err
	}

	flagged := tracker.FlagProjects(st.Snapshot().Teams, now)

	if asJSON {
		out := make([]flaggedJSON, 0, len(flagged))
		for _, f := range flagged {
			out = append(out, flaggedJSON{
				ProjectID:         f.Project.ID,
				Project:           f.Project.Name,
				Team:              f.TeamName,
				Deadline:          f.Project.Deadline,
				Stale:             f.IsStale,
				Urgent:            f.IsUrgent,
				DaysSinceUpdate:   f.DaysSinceUpdate,
				DaysUntilDeadline: f.DaysUntilDeadline,
			})
		}

		return o.PrintJSON(out)
	}

	if len(flagged) == 0 {
		o.Println("no stale or urgent projects")

		return nil
	}

	for _, f := range flagged {
		o.Println(formatFlagged(f))
	}

	return nil
}

type flaggedJSON struct {
	ProjectID         string `json:"projectId"`
	Project           string `json:"project"`
	Team              string `json:"team"`
	Deadline          string `json:"deadline,omitempty"`
	Stale             bool   `json:"stale"`
	Urgent            bool   `json:"urgent"`
	DaysSinceUpdate   *int   `json:"daysSinceUpdate"`
	DaysUntilDeadline *int   `json:"daysUntilDeadline"`
}

// formatFlagged renders one line:
//
//	URGENT STALE  Billing (Platform)  due in 3d  updated 20d ago
func formatFlagged(f tracker.Flagged) string {
	var labels []string

	if f.IsUrgent {
		labels = append(labels, "URGENT")
	}

	if f.IsStale {
		labels = append(labels, "STALE")
	}

	return fmt.Sprintf("%-12s  %s (%s)  %s  %s",
		strings.Join(labels, " "), f.Project.Name, f.TeamName,
		formatDeadline(f.DaysUntilDeadline), formatLastUpdate(f.DaysSinceUpdate))
}

func formatDeadline(days *int) string {
	switch {
	case days == nil:
		return "no deadline"
	case *days < 0:
		return fmt.Sprintf("overdue by %dd", -*days)
	case *days == 0:
		return "due today"
	default:
		return fmt.Sprintf("due in %dd", *days)
	}
}

func formatLastUpdate(days *int) string {
	switch {
	case days == nil:
		return "never updated"
	case *days <= 0:
		return "updated today"
	default:
		return fmt.Sprintf("updated %dd ago", *days)
	}
}
