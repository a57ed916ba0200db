package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/workboard/internal/actions"
)

// ActionsCmd returns the actions command.
func ActionsCmd(a *app) *Command {
	fs := flag.NewFlagSet("actions", flag.ContinueOnError)
	fs.String("status", string(actions.FilterTodo), "Filter by status (all|todo|done)")
	fs.String("search", "", "Only show actions whose title, source or description contains `text`")
	fs.Bool("json", false, "Print JSON")

	return &Command{
		Flags: fs,
		Usage: "actions [flags]",
		Short: "List your action items",
		Long: `List the tasks, meeting items and working group items assigned to you.
Sorted by due date (earliest first); items without a due date come last.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execActions(o, a, fs)
		},
	}
}

func execActions(o *IO, a *app, fs *flag.FlagSet) error {
	raw, _ := fs.GetString("status")

	status, err := actions.ParseStatusFilter(raw)
	if err != nil {
		return err
	}

	search, _ := fs.GetString("search")
	asJSON, _ := fs.GetBool("json")

	userID, err := a.user()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}

	list := actions.Filter(actions.Collect(actions.GraphOf(st.Snapshot()), userID), status, search)

	if asJSON {
		out := make([]actionJSON, 0, len(list))
		for _, item := range list {
			out = append(out, toActionJSON(item))
		}

		return o.PrintJSON(out)
	}

	for _, item := range list {
		o.Println(formatAction(item))
	}

	return nil
}

// actionJSON is the --json shape of an action.
type actionJSON struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
	SourceName  string `json:"sourceName"`
	ContextInfo string `json:"contextInfo"`
	ParentID    string `json:"parentId"`
	ContainerID string `json:"containerId"`
	SubID       string `json:"subId,omitempty"`
}

func toActionJSON(item actions.Action) actionJSON {
	out := actionJSON{
		Key:         item.Key(),
		ID:          item.ID,
		Source:      string(item.Source()),
		Title:       item.Title,
		Description: item.Description,
		Status:      item.Status,
		DueDate:     item.DueDate,
		Priority:    string(item.Priority),
		SourceName:  item.SourceName,
		ContextInfo: item.ContextInfo,
	}

	if item.Ref != nil {
		out.ParentID = item.Ref.ParentID()
		out.ContainerID = item.Ref.ContainerID()
		out.SubID = item.Ref.SubID()
	}

	return out
}

// formatAction renders one action line:
//
//	proj-x1  [To Do]  Migrate billing  due 2024-06-10  Billing (Project • Platform)
func formatAction(item actions.Action) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  [%s]  %s", item.Key(), item.Status, item.Title)

	if item.DueDate != "" {
		b.WriteString("  due " + item.DueDate)
	}

	if item.Priority != "" {
		b.WriteString("  " + string(item.Priority))
	}

	fmt.Fprintf(&b, "  %s (%s)", item.SourceName, item.ContextInfo)

	return b.String()
}
