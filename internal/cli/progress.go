package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/workboard/internal/tracker"
)

// ProgressCmd returns the progress command.
func ProgressCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("progress", flag.ContinueOnError),
		Usage: "progress",
		Short: "Show weighted progress per project",
		Long: `Show weighted completion and the task breakdown of every non-archived
project. A task's weight defaults to 1.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execProgress(o, a)
		},
	}
}

func execProgress(o *IO, a *app) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}

	for _, row := range tracker.Portfolio(st.Snapshot().Teams) {
		b := row.Breakdown
		o.Printf("%3.0f%%  %s / %s  (%d tasks: %d done, %d in progress, %d blocked, %d to do)\n",
			row.Progress, row.TeamName, row.Project.Name,
			b.Total, b.Done, b.InProgress, b.Blocked, b.Todo)
	}

	return nil
}
