package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/workboard/internal/actions"
)

func Test_SplitLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		line string
		want []string
	}{
		{line: "actions --json", want: []string{"actions", "--json"}},
		{line: "  stale\t--json  ", want: []string{"stale", "--json"}},
		{line: `set-status project x1 "in progress"`, want: []string{"set-status", "project", "x1", "in progress"}},
		{line: `actions --search 'weekly sync'`, want: []string{"actions", "--search", "weekly sync"}},
		{line: `actions --search=a"b c"d`, want: []string{"actions", "--search=ab cd"}},
		{line: `actions --search ""`, want: []string{"actions", "--search", ""}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.line, func(t *testing.T) {
			t.Parallel()

			got, err := splitLine(testCase.line)
			require.NoError(t, err)

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Fatalf("words mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := splitLine(`set-status project x1 "done`)
	require.ErrorIs(t, err, errUnterminatedQuote)
}

func Test_NormalizeStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		source actions.SourceType
		input  string
		want   string
	}{
		{source: actions.SourceProject, input: "to do", want: "To Do"},
		{source: actions.SourceProject, input: "TO_DO", want: "To Do"},
		{source: actions.SourceProject, input: "in-progress", want: "In Progress"},
		{source: actions.SourceProject, input: "  Blocked ", want: "Blocked"},
		{source: actions.SourceMeeting, input: "to_start", want: "To Start"},
		{source: actions.SourceWorkingGroup, input: "ongoing", want: "Ongoing"},
		{source: actions.SourceWorkingGroup, input: "done", want: "Done"},
	}

	for _, testCase := range testCases {
		got, err := normalizeStatus(testCase.source, testCase.input)
		require.NoError(t, err, testCase.input)
		require.Equal(t, testCase.want, got)
	}

	_, err := normalizeStatus(actions.SourceMeeting, "To Do")
	require.ErrorIs(t, err, errInvalidStatus)
}
