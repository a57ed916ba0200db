package actions_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/workboard/internal/actions"
	"github.com/calvinalkan/workboard/internal/board"
)

func Test_ApplyStatus_Updates_Project_Task(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	before := deepCopy(t, g)

	action, ok := actions.Find(actions.Collect(g, userA), actions.SourceProject, "x1")
	require.True(t, ok)

	update, ok := actions.ApplyStatus(g, action, "Done")
	require.True(t, ok, "ApplyStatus should find the task")
	require.NotNil(t, update.Team)
	assert.Nil(t, update.Meeting)
	assert.Nil(t, update.Group)
	assert.Equal(t, actions.SourceProject, update.Source())

	want := deepCopy(t, before).Teams[0]
	want.Projects[0].Tasks[0].Status = board.TaskDone

	if diff := cmp.Diff(want, *update.Team); diff != "" {
		t.Fatalf("updated team mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(before, g); diff != "" {
		t.Fatalf("ApplyStatus mutated its input (-before +after):\n%s", diff)
	}
}

func Test_ApplyStatus_Updates_Meeting_Item(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	before := deepCopy(t, g)

	action, ok := actions.Find(actions.Collect(g, userA), actions.SourceMeeting, "a1")
	require.True(t, ok)

	update, ok := actions.ApplyStatus(g, action, string(board.ItemOngoing))
	require.True(t, ok)
	require.NotNil(t, update.Meeting)

	want := deepCopy(t, before).Meetings[0]
	want.ActionItems[0].Status = board.ItemOngoing

	if diff := cmp.Diff(want, *update.Meeting); diff != "" {
		t.Fatalf("updated meeting mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(before, g); diff != "" {
		t.Fatalf("ApplyStatus mutated its input (-before +after):\n%s", diff)
	}
}

func Test_ApplyStatus_Updates_Working_Group_Item(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	before := deepCopy(t, g)

	action, ok := actions.Find(actions.Collect(g, userA), actions.SourceWorkingGroup, "w2")
	require.True(t, ok)

	update, ok := actions.ApplyStatus(g, action, string(board.ItemDone))
	require.True(t, ok)
	require.NotNil(t, update.Group)
	assert.Equal(t, actions.SourceWorkingGroup, update.Source())

	want := deepCopy(t, before).Groups[0]
	want.Sessions[1].ActionItems[0].Status = board.ItemDone

	if diff := cmp.Diff(want, *update.Group); diff != "" {
		t.Fatalf("updated group mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(before, g); diff != "" {
		t.Fatalf("ApplyStatus mutated its input (-before +after):\n%s", diff)
	}
}

func Test_ApplyStatus_Is_Noop_When_Path_Missing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		action actions.Action
	}{
		{name: "NoRef", action: actions.Action{ID: "x1"}},
		{name: "MissingTeam", action: actions.Action{ID: "x1", Ref: actions.ProjectRef{TeamID: "nope", ProjectID: "p1"}}},
		{name: "MissingProject", action: actions.Action{ID: "x1", Ref: actions.ProjectRef{TeamID: "t1", ProjectID: "nope"}}},
		{name: "MissingTask", action: actions.Action{ID: "nope", Ref: actions.ProjectRef{TeamID: "t1", ProjectID: "p1"}}},
		{name: "TaskInOtherProject", action: actions.Action{ID: "x3", Ref: actions.ProjectRef{TeamID: "t1", ProjectID: "p1"}}},
		{name: "MissingMeeting", action: actions.Action{ID: "a1", Ref: actions.MeetingRef{MeetingID: "nope"}}},
		{name: "MissingMeetingItem", action: actions.Action{ID: "nope", Ref: actions.MeetingRef{MeetingID: "m1"}}},
		{name: "MissingGroup", action: actions.Action{ID: "w1", Ref: actions.GroupRef{GroupID: "nope", SessionID: "s1"}}},
		{name: "MissingSession", action: actions.Action{ID: "w1", Ref: actions.GroupRef{GroupID: "g1", SessionID: "nope"}}},
		{name: "ItemInOtherSession", action: actions.Action{ID: "w1", Ref: actions.GroupRef{GroupID: "g1", SessionID: "s2"}}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			g := sampleGraph()
			before := deepCopy(t, g)

			update, ok := actions.ApplyStatus(g, testCase.action, "Done")
			assert.False(t, ok)
			assert.Equal(t, actions.Update{}, update)

			if diff := cmp.Diff(before, g); diff != "" {
				t.Fatalf("no-op ApplyStatus mutated input (-before +after):\n%s", diff)
			}
		})
	}
}

func Test_ApplyStatus_Leaves_Siblings_Untouched(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	g.Teams[0].Projects = append(g.Teams[0].Projects, board.Project{
		ID:    "p3",
		Name:  "Ops",
		Tasks: []board.Task{{ID: "x1", Title: "same id, other project", Status: board.TaskTodo, AssigneeID: userA}},
	})

	action := actions.Action{ID: "x1", Ref: actions.ProjectRef{TeamID: "t1", ProjectID: "p1"}}

	update, ok := actions.ApplyStatus(g, action, "Blocked")
	require.True(t, ok)

	got := update.Team.Projects
	require.Len(t, got, 3)

	assert.Equal(t, board.TaskBlocked, got[0].Tasks[0].Status)

	if diff := cmp.Diff(g.Teams[0].Projects[0].Tasks[1], got[0].Tasks[1]); diff != "" {
		t.Errorf("sibling task changed (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(g.Teams[0].Projects[1:], got[1:]); diff != "" {
		t.Errorf("sibling projects changed (-want +got):\n%s", diff)
	}

	assert.Equal(t, board.TaskTodo, g.Teams[0].Projects[0].Tasks[0].Status, "input must keep old status")
}

func Test_Dispatch_Routes_To_Matching_Updater(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	rec := &recordingUpdater{}

	for _, a := range actions.Collect(g, userA) {
		update, ok := actions.ApplyStatus(g, a, "Done")
		require.True(t, ok, "action %s", a.Key())
		require.NoError(t, actions.Dispatch(update, rec))
	}

	assert.Len(t, rec.teams, 1)
	assert.Len(t, rec.meetings, 1)
	assert.Len(t, rec.groups, 2)
}

func Test_Dispatch_Wraps_Updater_Error(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	rec := &recordingUpdater{err: errBoom}
	meeting := board.Meeting{ID: "m"}

	err := actions.Dispatch(actions.Update{Meeting: &meeting}, rec)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "MEETING")

	err = actions.Dispatch(actions.Update{}, rec)
	require.ErrorIs(t, err, actions.ErrEmptyUpdate)
}
