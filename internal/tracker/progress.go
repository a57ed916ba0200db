package tracker

import "github.com/calvinalkan/workboard/internal/board"

// Progress returns the weighted completion of p in percent: the weight of
// done tasks over the weight of all tasks. A project without tasks is at 0.
func Progress(p board.Project) float64 {
	var done, total float64

	for _, task := range p.Tasks {
		w := task.EffectiveWeight()
		total += w

		if task.Status == board.TaskDone {
			done += w
		}
	}

	if total == 0 {
		return 0
	}

	return done / total * 100
}

// Breakdown counts a project's tasks by status. Todo holds every task that
// is not done, in progress or blocked.
type Breakdown struct {
	Total      int
	Done       int
	InProgress int
	Blocked    int
	Todo       int
}

// Percent returns n as a share of Total, 0 for an empty breakdown.
func (b Breakdown) Percent(n int) float64 {
	if b.Total == 0 {
		return 0
	}

	return float64(n) / float64(b.Total) * 100
}

// BreakdownOf counts the tasks of p by status.
func BreakdownOf(p board.Project) Breakdown {
	b := Breakdown{Total: len(p.Tasks)}

	for _, task := range p.Tasks {
		switch task.Status {
		case board.TaskDone:
			b.Done++
		case board.TaskInProgress:
			b.InProgress++
		case board.TaskBlocked:
			b.Blocked++
		default:
			b.Todo++
		}
	}

	return b
}

// ProjectProgress is one row of the portfolio view.
type ProjectProgress struct {
	TeamName  string
	Project   board.Project
	Progress  float64
	Breakdown Breakdown
}

// Portfolio returns progress rows for every non-archived project, in team
// and project order.
func Portfolio(teams []board.Team) []ProjectProgress {
	var out []ProjectProgress

	for _, team := range teams {
		for _, project := range team.Projects {
			if project.IsArchived {
				continue
			}

			out = append(out, ProjectProgress{
				TeamName:  team.Name,
				Project:   project,
				Progress:  Progress(project),
				Breakdown: BreakdownOf(project),
			})
		}
	}

	return out
}
