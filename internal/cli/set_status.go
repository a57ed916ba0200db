package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/workboard/internal/actions"
	"github.com/calvinalkan/workboard/internal/board"
)

var (
	errSetStatusArgs = errors.New("set-status requires <source> <id> <status>")
	errInvalidStatus = errors.New("invalid status")
)

var (
	taskStatuses = []string{
		string(board.TaskTodo), string(board.TaskInProgress), string(board.TaskBlocked), string(board.TaskDone),
	}
	itemStatuses = []string{
		string(board.ItemToStart), string(board.ItemOngoing), string(board.ItemBlocked), string(board.ItemDone),
	}
)

const setStatusArgs = 3

// SetStatusCmd returns the set-status command.
func SetStatusCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("set-status", flag.ContinueOnError),
		Usage: "set-status <source> <id> <status>",
		Short: "Change the status of one of your actions",
		Long: `Change the status of one of your action items and save it.

Source is project, meeting or working_group.
Project tasks take: To Do, In Progress, Blocked, Done.
Meeting and working group items take: To Start, Ongoing, Blocked, Done.
Statuses match case-insensitively; spaces may be written as _ or -.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execSetStatus(o, a, args)
		},
	}
}

func execSetStatus(o *IO, a *app, args []string) error {
	if len(args) != setStatusArgs {
		return errSetStatusArgs
	}

	source, err := actions.ParseSourceType(args[0])
	if err != nil {
		return err
	}

	id := args[1]

	status, err := normalizeStatus(source, args[2])
	if err != nil {
		return err
	}

	userID, err := a.user()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}

	graph := actions.GraphOf(st.Snapshot())

	action, ok := actions.Find(actions.Collect(graph, userID), source, id)
	if !ok {
		o.WarnLLM(
			fmt.Sprintf("no %s action %q assigned to %s", strings.ToLower(string(source)), id, userID),
			"run 'wb actions --status all' to list your actions",
		)

		return nil
	}

	if action.Status == status {
		o.Println(action.Key(), "already", status)

		return nil
	}

	update, ok := actions.ApplyStatus(graph, action, status)
	if !ok {
		o.WarnLLM(
			fmt.Sprintf("%s no longer resolves in %s", action.Key(), st.Path()),
			"reload the dashboard and try again",
		)

		return nil
	}

	err = actions.Dispatch(update, st)
	if err != nil {
		return err
	}

	o.Printf("%s: %s -> %s\n", action.Key(), action.Status, status)

	return nil
}

// normalizeStatus maps s onto the canonical status for source, ignoring
// case and treating "_" and "-" as spaces.
func normalizeStatus(source actions.SourceType, s string) (string, error) {
	valid := itemStatuses
	if source == actions.SourceProject {
		valid = taskStatuses
	}

	want := statusKey(s)

	for _, status := range valid {
		if statusKey(status) == want {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w %q for %s (valid: %s)", errInvalidStatus, s, strings.ToLower(string(source)), strings.Join(valid, ", "))
}

func statusKey(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))

	return strings.Join(strings.Fields(s), " ")
}
