// Package selector decides which reminder the viewer should surface next.
// Selection is a pure read over a snapshot of the task list and an explicit
// instant, so it can be re-evaluated on every presentation tick: a task can
// become eligible purely because the wall clock advanced.
package selector

import (
	"sort"
	"time"

	"remindik/internal/domain"
)

// Eligible reports whether a task should be considered for presentation at
// the given instant. Completed tasks never qualify. Recurring and scheduled
// tasks qualify once their due instant has been reached; immediate tasks
// always qualify.
func Eligible(task domain.Task, now time.Time) bool {
	if task.Completed {
		return false
	}
	switch task.Kind {
	case domain.KindRecurring:
		return task.NextDue != nil && !task.NextDue.After(now)
	case domain.KindScheduled:
		return task.ScheduledFor != nil && !task.ScheduledFor.After(now)
	default:
		return true
	}
}

// NextTask picks the single task to surface, or nil when nothing is
// eligible (the all-done signal). Among eligible tasks, timed ones sort
// before untimed ones; two timed tasks order by due instant ascending and
// two untimed ones by creation time ascending.
func NextTask(tasks []domain.Task, now time.Time) *domain.Task {
	var eligible []domain.Task
	for _, task := range tasks {
		if Eligible(task, now) {
			eligible = append(eligible, task)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return lessTask(eligible[i], eligible[j])
	})

	next := eligible[0]
	return &next
}

// Countdown returns how long until the task's due instant (negative when
// overdue). The second return is false for tasks with no due instant.
func Countdown(task domain.Task, now time.Time) (time.Duration, bool) {
	due := task.DueAt()
	if due == nil {
		return 0, false
	}
	return due.Sub(now), true
}

func lessTask(a, b domain.Task) bool {
	aDue, bDue := a.DueAt(), b.DueAt()
	switch {
	case aDue != nil && bDue != nil:
		return aDue.Before(*bDue)
	case aDue != nil:
		return true
	case bDue != nil:
		return false
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
