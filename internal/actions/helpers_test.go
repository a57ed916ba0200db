package actions_test

import (
	"encoding/json"
	"testing"

	"github.com/calvinalkan/workboard/internal/actions"
	"github.com/calvinalkan/workboard/internal/board"
)

const (
	userA = "u1"
	userB = "u2"
)

// sampleGraph returns a graph with one record of every kind for userA and a
// few distractors owned by userB or hidden by archival.
func sampleGraph() actions.Graph {
	return actions.Graph{
		Teams: []board.Team{
			{
				ID:   "t1",
				Name: "Platform",
				Projects: []board.Project{
					{
						ID:   "p1",
						Name: "Billing",
						Tasks: []board.Task{
							{ID: "x1", Title: "Migrate invoices", Description: "move to v2 schema", Status: board.TaskTodo, Priority: board.PriorityHigh, AssigneeID: userA, ETA: "2024-01-10", Weight: 2},
							{ID: "x2", Title: "Review tax rules", Status: board.TaskInProgress, AssigneeID: userB, ETA: "2024-01-05"},
						},
					},
					{
						ID:         "p2",
						Name:       "Legacy",
						IsArchived: true,
						Tasks: []board.Task{
							{ID: "x3", Title: "Archived work", Status: board.TaskTodo, AssigneeID: userA, ETA: "2024-01-01"},
						},
					},
				},
			},
		},
		Meetings: []board.Meeting{
			{
				ID:    "m1",
				Title: "Weekly sync",
				Date:  "2024-01-08",
				ActionItems: []board.ActionItem{
					{ID: "a1", Description: "Send minutes", OwnerID: userA, Status: board.ItemToStart, DueDate: "2024-02-01"},
					{ID: "a2", Description: "Book room", OwnerID: userB, Status: board.ItemOngoing, DueDate: "2024-01-02"},
				},
			},
		},
		Groups: []board.WorkingGroup{
			{
				ID:    "g1",
				Title: "Security guild",
				Sessions: []board.Session{
					{
						ID:   "s1",
						Date: "2024-01-03",
						ActionItems: []board.ActionItem{
							{ID: "w1", Description: "Rotate keys", OwnerID: userA, Status: board.ItemDone, DueDate: "2024-01-04"},
						},
					},
					{
						ID:   "s2",
						Date: "2024-01-17",
						ActionItems: []board.ActionItem{
							{ID: "w2", Description: "Audit vendors", OwnerID: userA, Status: board.ItemBlocked},
						},
					},
				},
			},
			{
				ID:       "g2",
				Title:    "Retired guild",
				Archived: true,
				Sessions: []board.Session{
					{
						ID:          "s3",
						Date:        "2024-01-03",
						ActionItems: []board.ActionItem{{ID: "w3", Description: "Hidden", OwnerID: userA, Status: board.ItemToStart}},
					},
				},
			},
		},
	}
}

// deepCopy returns an independent copy of g via a JSON round trip.
func deepCopy(t *testing.T, g actions.Graph) actions.Graph {
	t.Helper()

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal graph: %v", err)
	}

	var out actions.Graph

	err = json.Unmarshal(data, &out)
	if err != nil {
		t.Fatalf("unmarshal graph: %v", err)
	}

	return out
}

func ids(list []actions.Action) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}

	return out
}

type recordingUpdater struct {
	teams    []board.Team
	meetings []board.Meeting
	groups   []board.WorkingGroup
	err      error
}

func (r *recordingUpdater) UpdateTeam(team board.Team) error {
	r.teams = append(r.teams, team)

	return r.err
}

func (r *recordingUpdater) UpdateMeeting(meeting board.Meeting) error {
	r.meetings = append(r.meetings, meeting)

	return r.err
}

func (r *recordingUpdater) UpdateGroup(group board.WorkingGroup) error {
	r.groups = append(r.groups, group)

	return r.err
}
