package actions

import (
	"slices"
	"time"

	"github.com/calvinalkan/workboard/internal/board"
)

// Collect returns every task assigned to userID and every action item owned
// by userID. Archived projects and archived working groups are skipped.
//
// The result is sorted by due date, earliest first. Actions without a due
// date (or with one that does not parse) come last. The sort is stable, so
// ties keep graph order: teams, then meetings, then groups.
func Collect(g Graph, userID string) []Action {
	if userID == "" {
		return nil
	}

	var out []Action

	for _, team := range g.Teams {
		for _, project := range team.Projects {
			if project.IsArchived {
				continue
			}

			for _, task := range project.Tasks {
				if task.AssigneeID != userID {
					continue
				}

				out = append(out, Action{
					ID:          task.ID,
					Title:       task.Title,
					Description: task.Description,
					Status:      string(task.Status),
					DueDate:     task.ETA,
					Priority:    task.Priority,
					SourceName:  project.Name,
					ContextInfo: "Project • " + team.Name,
					Ref:         ProjectRef{TeamID: team.ID, ProjectID: project.ID},
				})
			}
		}
	}

	for _, meeting := range g.Meetings {
		for _, item := range meeting.ActionItems {
			if item.OwnerID != userID {
				continue
			}

			out = append(out, itemAction(item, meeting.Title, "Meeting • "+meeting.Date, MeetingRef{MeetingID: meeting.ID}))
		}
	}

	for _, group := range g.Groups {
		if group.Archived {
			continue
		}

		for _, session := range group.Sessions {
			for _, item := range session.ActionItems {
				if item.OwnerID != userID {
					continue
				}

				ref := GroupRef{GroupID: group.ID, SessionID: session.ID}
				out = append(out, itemAction(item, group.Title, "WG Session • "+session.Date, ref))
			}
		}
	}

	sortByDueDate(out)

	return out
}

func itemAction(item board.ActionItem, sourceName, contextInfo string, ref Ref) Action {
	return Action{
		ID:          item.ID,
		Title:       item.Description,
		Status:      string(item.Status),
		DueDate:     item.DueDate,
		Priority:    item.Priority,
		SourceName:  sourceName,
		ContextInfo: contextInfo,
		Ref:         ref,
	}
}

// sortByDueDate stable-sorts actions by parsed due date, undated last.
func sortByDueDate(list []Action) {
	if len(list) < 2 {
		return
	}

	type keyed struct {
		action Action
		due    time.Time
		dated  bool
	}

	keys := make([]keyed, len(list))
	for i, a := range list {
		due, ok := board.ParseDate(a.DueDate)
		keys[i] = keyed{action: a, due: due, dated: ok}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.dated && b.dated:
			return a.due.Compare(b.due)
		case a.dated:
			return -1
		case b.dated:
			return 1
		default:
			return 0
		}
	})

	for i := range keys {
		list[i] = keys[i].action
	}
}
