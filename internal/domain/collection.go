package domain

import "time"

// Collection is the full reminder list plus the logical timestamp used for
// last-writer-wins sync. The JSON shape ("todos" + "lastModified") is the
// wire and file format shared by the server and the sync client.
type Collection struct {
	Tasks        []Task `json:"todos"`
	LastModified int64  `json:"lastModified"`
}

// Clone returns a deep-enough copy for snapshot reads: the slice is copied
// so callers can iterate safely while the original keeps mutating.
func (c Collection) Clone() Collection {
	tasks := make([]Task, len(c.Tasks))
	copy(tasks, c.Tasks)
	return Collection{Tasks: tasks, LastModified: c.LastModified}
}

// FindByID returns the index of the task with the given id, or -1.
func (c Collection) FindByID(id string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Touch stamps the collection with the given instant in Unix milliseconds.
func (c *Collection) Touch(now time.Time) {
	c.LastModified = now.UnixMilli()
}

// Stats summarizes completion counts for display.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Stats counts total, completed and pending tasks.
func (c Collection) Stats() Stats {
	s := Stats{Total: len(c.Tasks)}
	for i := range c.Tasks {
		if c.Tasks[i].Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
