package cli_test

import (
	"testing"

	"github.com/calvinalkan/workboard/internal/cli"
)

const asOf = "2024-06-15"

const boardDoc = `{
  "users": [
    {"id": "u1", "uid": "alice", "firstName": "Alice", "lastName": "Doe"},
    {"id": "u2", "uid": "bob", "firstName": "Bob", "lastName": "Roe"}
  ],
  "teams": [
    {
      "id": "t1",
      "name": "Platform",
      "managerId": "u1",
      "projects": [
        {
          "id": "p1",
          "name": "Billing",
          "status": "Active",
          "deadline": "2024-06-18",
          "auditLog": [{"id": "l1", "date": "2024-05-01T09:00:00Z", "userName": "Alice", "action": "created"}],
          "tasks": [
            {"id": "x1", "title": "Migrate invoices", "description": "move to v2", "status": "To Do", "priority": "High", "assigneeId": "u1", "eta": "2024-06-10", "weight": 2, "isImportant": true},
            {"id": "x2", "title": "Write runbook", "description": "", "status": "Done", "priority": "", "assigneeId": "u1", "eta": "2024-06-01"},
            {"id": "x3", "title": "Review", "description": "", "status": "In Progress", "priority": "Low", "assigneeId": "u2", "eta": ""}
          ]
        },
        {
          "id": "p2",
          "name": "Search",
          "status": "Active",
          "deadline": "2024-09-01",
          "auditLog": [{"id": "l2", "date": "2024-06-14", "userName": "Bob", "action": "updated"}],
          "tasks": [
            {"id": "y1", "title": "Index", "description": "", "status": "Blocked", "priority": "Medium", "assigneeId": "u2", "eta": ""}
          ]
        },
        {
          "id": "p3",
          "name": "Legacy",
          "status": "Paused",
          "deadline": "2024-01-01",
          "isArchived": true,
          "tasks": [
            {"id": "z1", "title": "Decommission", "description": "", "status": "To Do", "priority": "Low", "assigneeId": "u1", "eta": "2024-01-01"}
          ]
        },
        {
          "id": "p4",
          "name": "Onboarding",
          "status": "Active",
          "deadline": "2024-06-01",
          "auditLog": [{"id": "l3", "date": "2024-06-13", "userName": "Alice", "action": "updated"}],
          "tasks": []
        }
      ]
    }
  ],
  "meetings": [
    {"id": "m1", "teamId": "t1", "title": "Weekly sync", "date": "2024-06-10", "minutes": "kept", "actionItems": [
      {"id": "a1", "description": "Send minutes", "ownerId": "u1", "status": "To Start", "dueDate": "2024-06-12"}
    ]}
  ],
  "workingGroups": [
    {"id": "g1", "title": "Security guild", "archived": false, "sessions": [
      {"id": "s1", "date": "2024-06-11", "actionItems": [
        {"id": "w1", "description": "Rotate keys", "ownerId": "u1", "status": "Ongoing"}
      ]}
    ]}
  ],
  "weeklyReports": [
    {"id": "r1", "userId": "u2", "weekOf": "2024-06-10"}
  ],
  "notifications": [{"id": "n1", "message": "welcome"}]
}`

// newBoardCLI returns a CLI with the fixture snapshot and WB_USER=u1.
func newBoardCLI(t *testing.T) *cli.CLI {
	t.Helper()

	c := cli.NewCLI(t)
	c.WriteDB(boardDoc)
	c.Env["WB_USER"] = "u1"

	return c
}
