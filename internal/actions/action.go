// Package actions projects tasks and action items from teams, meetings and
// working groups into one list of [Action] values owned by a user, and routes
// status changes back to the record an action was projected from.
//
// Everything here is a pure function of its inputs. Mutations return a new
// top-level entity ([Update]) that the caller hands to its store; the input
// graph is never modified.
package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/calvinalkan/workboard/internal/board"
)

// SourceType names the kind of record an action was projected from.
type SourceType string

// Source types.
const (
	SourceProject      SourceType = "PROJECT"
	SourceMeeting      SourceType = "MEETING"
	SourceWorkingGroup SourceType = "WORKING_GROUP"
)

// ErrInvalidSource is returned by [ParseSourceType] for unknown names.
var ErrInvalidSource = errors.New("invalid source (valid: project, meeting, working_group)")

// ParseSourceType maps a case-insensitive name to a [SourceType].
// "wg" and "group" are accepted for [SourceWorkingGroup].
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PROJECT":
		return SourceProject, nil
	case "MEETING":
		return SourceMeeting, nil
	case "WORKING_GROUP", "WG", "GROUP":
		return SourceWorkingGroup, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, s)
	}
}

// Ref addresses the record behind an action. It is one of [ProjectRef],
// [MeetingRef] or [GroupRef].
type Ref interface {
	Source() SourceType

	// ParentID is the project, meeting or group holding the record.
	ParentID() string

	// ContainerID is the top-level entity that gets rewritten on update.
	ContainerID() string

	// SubID is the session id for working group items, empty otherwise.
	SubID() string

	isRef()
}

// ProjectRef addresses a task inside a team's project.
type ProjectRef struct {
	TeamID    string
	ProjectID string
}

func (ProjectRef) Source() SourceType    { return SourceProject }
func (r ProjectRef) ParentID() string    { return r.ProjectID }
func (r ProjectRef) ContainerID() string { return r.TeamID }
func (ProjectRef) SubID() string         { return "" }
func (ProjectRef) isRef()                {}

// MeetingRef addresses an action item of a meeting. The meeting is both
// parent and container.
type MeetingRef struct {
	MeetingID string
}

func (MeetingRef) Source() SourceType    { return SourceMeeting }
func (r MeetingRef) ParentID() string    { return r.MeetingID }
func (r MeetingRef) ContainerID() string { return r.MeetingID }
func (MeetingRef) SubID() string         { return "" }
func (MeetingRef) isRef()                {}

// GroupRef addresses an action item inside one session of a working group.
type GroupRef struct {
	GroupID   string
	SessionID string
}

func (GroupRef) Source() SourceType    { return SourceWorkingGroup }
func (r GroupRef) ParentID() string    { return r.GroupID }
func (r GroupRef) ContainerID() string { return r.GroupID }
func (r GroupRef) SubID() string       { return r.SessionID }
func (GroupRef) isRef()                {}

// Action is the normalized view of a task or action item.
//
// ID is the source record's id. It is only unique together with the source
// type; use [Action.Key] when a single unique string is needed.
type Action struct {
	ID          string
	Title       string
	Description string
	Status      string
	DueDate     string
	Priority    board.Priority
	SourceName  string
	ContextInfo string
	Ref         Ref
}

// Source returns the kind of record the action was projected from.
func (a Action) Source() SourceType {
	if a.Ref == nil {
		return ""
	}

	return a.Ref.Source()
}

// IsDone reports whether the status is the shared "Done" literal.
func (a Action) IsDone() bool {
	return a.Status == board.StatusDone
}

// Key returns an id that is unique across source types.
func (a Action) Key() string {
	switch a.Source() {
	case SourceProject:
		return "proj-" + a.ID
	case SourceMeeting:
		return "meet-" + a.ID
	case SourceWorkingGroup:
		return "wg-" + a.ID
	default:
		return a.ID
	}
}

// Graph is a read-only snapshot of the three source graphs.
type Graph struct {
	Teams    []board.Team
	Meetings []board.Meeting
	Groups   []board.WorkingGroup
}

// GraphOf returns the graph view of a snapshot.
func GraphOf(s *board.Snapshot) Graph {
	return Graph{
		Teams:    s.Teams,
		Meetings: s.Meetings,
		Groups:   s.WorkingGroups,
	}
}

// Find returns the action with the given source and id.
func Find(actions []Action, source SourceType, id string) (Action, bool) {
	for _, a := range actions {
		if a.ID == id && a.Source() == source {
			return a, true
		}
	}

	return Action{}, false
}
