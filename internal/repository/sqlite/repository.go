package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"remindik/internal/errors"
	"remindik/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const taskColumns = `id, text, kind, completed, completed_at, created_at, scheduled_for, frequency, days_of_week, time_of_day, next_due`

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	SaveTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Collection operations used by sync
	ReplaceAll(ctx context.Context, tasks []*Task, lastModified int64) error
	GetLastModified(ctx context.Context) (int64, error)
	SetLastModified(ctx context.Context, lastModified int64) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveTask inserts a task, or overwrites the stored row when the ID already exists
func (r *SQLiteRepository) SaveTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		text = excluded.text,
		kind = excluded.kind,
		completed = excluded.completed,
		completed_at = excluded.completed_at,
		created_at = excluded.created_at,
		scheduled_for = excluded.scheduled_for,
		frequency = excluded.frequency,
		days_of_week = excluded.days_of_week,
		time_of_day = excluded.time_of_day,
		next_due = excluded.next_due`

	_, err := r.db.ExecContext(ctx, query, taskArgs(task)...)
	if err != nil {
		return HandleDatabaseError("save task", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasks retrieves all tasks in creation order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}

// ReplaceAll atomically replaces the whole task set and the last modified
// stamp. Sync uses this to install the winning collection.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, tasks []*Task, lastModified int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return HandleDatabaseError("clear tasks", err)
	}

	insert := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, task := range tasks {
		if _, err := tx.ExecContext(ctx, insert, taskArgs(task)...); err != nil {
			tx.Rollback()
			return HandleDatabaseError("insert task", err)
		}
	}

	if _, err := tx.ExecContext(ctx, metaUpdateQuery, strconv.FormatInt(lastModified, 10)); err != nil {
		tx.Rollback()
		return HandleDatabaseError("update last modified", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

const metaUpdateQuery = `
	INSERT INTO sync_state (key, value) VALUES ('last_modified', ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

// GetLastModified returns the stored last modified stamp in Unix milliseconds
func (r *SQLiteRepository) GetLastModified(ctx context.Context) (int64, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM sync_state WHERE key = 'last_modified'`).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, HandleDatabaseError("get last modified", err)
	}

	stamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, HandleDatabaseError("parse last modified", err)
	}
	return stamp, nil
}

// SetLastModified stores the last modified stamp in Unix milliseconds
func (r *SQLiteRepository) SetLastModified(ctx context.Context, lastModified int64) error {
	_, err := r.db.ExecContext(ctx, metaUpdateQuery, strconv.FormatInt(lastModified, 10))
	if err != nil {
		return HandleDatabaseError("set last modified", err)
	}
	return nil
}

func taskArgs(task *Task) []interface{} {
	var frequency, daysOfWeek, timeOfDay interface{}
	if task.Frequency != nil {
		frequency = *task.Frequency
	}
	if task.DaysOfWeek != nil {
		daysOfWeek = *task.DaysOfWeek
	}
	if task.TimeOfDay != nil {
		timeOfDay = *task.TimeOfDay
	}

	return []interface{}{
		task.ID,
		task.Text,
		task.Kind,
		task.Completed,
		FormatTimePtrForDB(task.CompletedAt),
		FormatTimeForDB(task.CreatedAt),
		FormatTimePtrForDB(task.ScheduledFor),
		frequency,
		daysOfWeek,
		timeOfDay,
		FormatTimePtrForDB(task.NextDue),
	}
}
