package actions

import (
	"errors"
	"fmt"
	"slices"

	"github.com/calvinalkan/workboard/internal/board"
)

// Update is the rewritten top-level entity produced by [ApplyStatus].
// Exactly one field is set.
type Update struct {
	Team    *board.Team
	Meeting *board.Meeting
	Group   *board.WorkingGroup
}

// Source returns which entity kind the update carries.
func (u Update) Source() SourceType {
	switch {
	case u.Team != nil:
		return SourceProject
	case u.Meeting != nil:
		return SourceMeeting
	case u.Group != nil:
		return SourceWorkingGroup
	default:
		return ""
	}
}

// Updater persists rewritten entities. It is implemented by the store.
type Updater interface {
	UpdateTeam(team board.Team) error
	UpdateMeeting(meeting board.Meeting) error
	UpdateGroup(group board.WorkingGroup) error
}

// ErrEmptyUpdate is returned by [Dispatch] for a zero [Update].
var ErrEmptyUpdate = errors.New("update carries no entity")

// Dispatch hands the entity in u to the matching Updater method.
func Dispatch(u Update, up Updater) error {
	var err error

	switch {
	case u.Team != nil:
		err = up.UpdateTeam(*u.Team)
	case u.Meeting != nil:
		err = up.UpdateMeeting(*u.Meeting)
	case u.Group != nil:
		err = up.UpdateGroup(*u.Group)
	default:
		return ErrEmptyUpdate
	}

	if err != nil {
		return fmt.Errorf("update %s: %w", u.Source(), err)
	}

	return nil
}

// ApplyStatus sets the status of the record behind a and returns the
// rewritten top-level entity holding it. Only the path to the record is
// copied; sibling projects, sessions, tasks and items are shared with g.
//
// It reports false, and changes nothing, when any entity along the path is
// missing from g. A stale action is not an error.
func ApplyStatus(g Graph, a Action, status string) (Update, bool) {
	switch ref := a.Ref.(type) {
	case ProjectRef:
		team, ok := setTaskStatus(g.Teams, ref, a.ID, board.TaskStatus(status))
		if !ok {
			return Update{}, false
		}

		return Update{Team: &team}, true
	case MeetingRef:
		meeting, ok := setMeetingItemStatus(g.Meetings, ref, a.ID, board.ActionItemStatus(status))
		if !ok {
			return Update{}, false
		}

		return Update{Meeting: &meeting}, true
	case GroupRef:
		group, ok := setGroupItemStatus(g.Groups, ref, a.ID, board.ActionItemStatus(status))
		if !ok {
			return Update{}, false
		}

		return Update{Group: &group}, true
	default:
		return Update{}, false
	}
}

func setTaskStatus(teams []board.Team, ref ProjectRef, taskID string, status board.TaskStatus) (board.Team, bool) {
	ti := slices.IndexFunc(teams, func(t board.Team) bool { return t.ID == ref.TeamID })
	if ti < 0 {
		return board.Team{}, false
	}

	team := teams[ti]

	pi := slices.IndexFunc(team.Projects, func(p board.Project) bool { return p.ID == ref.ProjectID })
	if pi < 0 {
		return board.Team{}, false
	}

	project := team.Projects[pi]

	ki := slices.IndexFunc(project.Tasks, func(t board.Task) bool { return t.ID == taskID })
	if ki < 0 {
		return board.Team{}, false
	}

	project.Tasks = slices.Clone(project.Tasks)
	project.Tasks[ki].Status = status

	team.Projects = slices.Clone(team.Projects)
	team.Projects[pi] = project

	return team, true
}

func setMeetingItemStatus(meetings []board.Meeting, ref MeetingRef, itemID string, status board.ActionItemStatus) (board.Meeting, bool) {
	mi := slices.IndexFunc(meetings, func(m board.Meeting) bool { return m.ID == ref.MeetingID })
	if mi < 0 {
		return board.Meeting{}, false
	}

	meeting := meetings[mi]

	items, ok := setItemStatus(meeting.ActionItems, itemID, status)
	if !ok {
		return board.Meeting{}, false
	}

	meeting.ActionItems = items

	return meeting, true
}

func setGroupItemStatus(groups []board.WorkingGroup, ref GroupRef, itemID string, status board.ActionItemStatus) (board.WorkingGroup, bool) {
	gi := slices.IndexFunc(groups, func(g board.WorkingGroup) bool { return g.ID == ref.GroupID })
	if gi < 0 {
		return board.WorkingGroup{}, false
	}

	group := groups[gi]

	si := slices.IndexFunc(group.Sessions, func(s board.Session) bool { return s.ID == ref.SessionID })
	if si < 0 {
		return board.WorkingGroup{}, false
	}

	session := group.Sessions[si]

	items, ok := setItemStatus(session.ActionItems, itemID, status)
	if !ok {
		return board.WorkingGroup{}, false
	}

	session.ActionItems = items

	group.Sessions = slices.Clone(group.Sessions)
	group.Sessions[si] = session

	return group, true
}

// setItemStatus returns a copy of items with one item's status replaced.
func setItemStatus(items []board.ActionItem, itemID string, status board.ActionItemStatus) ([]board.ActionItem, bool) {
	idx := slices.IndexFunc(items, func(it board.ActionItem) bool { return it.ID == itemID })
	if idx < 0 {
		return nil, false
	}

	out := slices.Clone(items)
	out[idx].Status = status

	return out, true
}
