// Package board defines the dashboard's domain model: teams and their
// projects and tasks, meetings, working groups and their sessions, and the
// action items attached to meetings and sessions.
//
// Field names in JSON follow the dashboard's db.json document so a snapshot
// written by the web app decodes without translation. Entity fields are
// always encoded, zero values included, so a cleared field overwrites the
// stored one when the store merges an entity.
package board

// TaskStatus is the lifecycle state of a project task.
type TaskStatus string

// Task statuses.
const (
	TaskTodo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskBlocked    TaskStatus = "Blocked"
	TaskDone       TaskStatus = "Done"
)

// ActionItemStatus is the lifecycle state of a meeting or session action item.
type ActionItemStatus string

// Action item statuses.
const (
	ItemToStart ActionItemStatus = "To Start"
	ItemOngoing ActionItemStatus = "Ongoing"
	ItemBlocked ActionItemStatus = "Blocked"
	ItemDone    ActionItemStatus = "Done"
)

// StatusDone is the literal shared by [TaskDone] and [ItemDone].
const StatusDone = "Done"

// Priority is shared by tasks and action items.
type Priority string

// Priorities.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project statuses.
const (
	ProjectPlanning ProjectStatus = "Planning"
	ProjectActive   ProjectStatus = "Active"
	ProjectPaused   ProjectStatus = "Paused"
	ProjectDone     ProjectStatus = "Done"
)

// Team owns an unordered list of projects.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId"`
	Projects  []Project `json:"projects"`
}

// Project groups tasks under a deadline. Archived projects are hidden from
// every derived view.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Deadline    string        `json:"deadline"`
	IsArchived  bool          `json:"isArchived"`
	Tasks       []Task        `json:"tasks"`
	AuditLog    []AuditEntry  `json:"auditLog"`
}

// Task is a unit of project work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	AssigneeID  string     `json:"assigneeId"`
	ETA         string     `json:"eta"`
	Weight      float64    `json:"weight"`
}

// EffectiveWeight returns the task weight, or 1 when unset or not positive.
func (t Task) EffectiveWeight() float64 {
	if t.Weight <= 0 {
		return 1
	}

	return t.Weight
}

// AuditEntry records one change made to a project.
type AuditEntry struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	UserName string `json:"userName"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

// Meeting carries the action items agreed during it. Meetings are never archived.
type Meeting struct {
	ID          string       `json:"id"`
	TeamID      string       `json:"teamId"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	ActionItems []ActionItem `json:"actionItems"`
}

// WorkingGroup is a recurring forum made of sessions.
type WorkingGroup struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Archived bool      `json:"archived"`
	Sessions []Session `json:"sessions"`
}

// Session is one working group meeting.
type Session struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Notes       string       `json:"notes"`
	ActionItems []ActionItem `json:"actionItems"`
}

// ActionItem is a to-do owned by one user, attached to a meeting or session.
type ActionItem struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	OwnerID     string           `json:"ownerId"`
	Status      ActionItemStatus `json:"status"`
	DueDate     string           `json:"dueDate"`
	Priority    Priority         `json:"priority"`
}

// WeeklyReport is a user's weekly status report awaiting manager review.
type WeeklyReport struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	WeekOf       string `json:"weekOf"`
	ManagerCheck bool   `json:"managerCheck,omitempty"`
	IsArchived   bool   `json:"isArchived,omitempty"`
}

// User is a dashboard account.
type User struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Snapshot is the whole dashboard document.
type Snapshot struct {
	Users         []User         `json:"users"`
	Teams         []Team         `json:"teams"`
	Meetings      []Meeting      `json:"meetings"`
	WorkingGroups []WorkingGroup `json:"workingGroups"`
	WeeklyReports []WeeklyReport `json:"weeklyReports"`
	LastUpdated   int64          `json:"lastUpdated,omitempty"`
}
