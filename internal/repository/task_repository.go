package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/task-vault/internal/model"
)

const taskColumns = "id,user_id,text,done,created_at,updated_at"

// TaskRepo persists per-user tasks. Every query is scoped by user_id
// so a caller can never observe, modify or delete another user's
// tasks; a foreign task behaves exactly like a missing one.
type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// ListByUser returns all tasks owned by userID, newest first.
func (r *TaskRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// FindByID fetches a single task owned by userID. Returns
// sql.ErrNoRows when the task does not exist or belongs to someone else.
func (r *TaskRepo) FindByID(ctx context.Context, userID, id uint64) (model.Task, error) {
	var t model.Task
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(&t.ID, &t.UserID, &t.Text, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a task for userID and returns the stored record.
func (r *TaskRepo) Create(ctx context.Context, userID uint64, text string) (model.Task, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (user_id, text) VALUES (?,?)", userID, text)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	return r.FindByID(ctx, userID, uint64(id))
}

// SetDone updates the done flag of a task owned by userID and returns
// the fresh record. Returns sql.ErrNoRows when no owned task matches.
func (r *TaskRepo) SetDone(ctx context.Context, userID, id uint64, done bool) (model.Task, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET done=? WHERE id=? AND user_id=?", done, id, userID)
	if err != nil {
		return model.Task{}, err
	}
	// An update whose values are already current reports zero affected
	// rows, same as a missing task; the read-back settles which it was.
	return r.FindByID(ctx, userID, id)
}

// Delete removes a task owned by userID. Returns sql.ErrNoRows when
// no owned task matches.
func (r *TaskRepo) Delete(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
