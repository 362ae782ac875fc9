package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/task-vault/internal/model"
)

// mysqlDuplicateEntry is the server error code for a unique index
// violation (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

const userColumns = "id,username,email,password_hash,created_at,updated_at"

// UserRepo persists user records. Uniqueness of username and email is
// enforced by unique indexes on the table, so concurrent registrations
// of the same identity resolve to exactly one winner; the loser gets
// ErrDuplicate.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail trims and lowercases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user and returns the stored record. The
// password must already be hashed by the caller; this layer never
// sees plaintext. A unique index violation is reported as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, passwordHash)
	if err != nil {
		return model.User{}, translateDup(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.FindByID(ctx, uint64(id))
}

// FindByEmail fetches a user by normalized email. Returns
// sql.ErrNoRows when no user matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		NormalizeEmail(email)))
}

// FindByID fetches a user by id. Returns sql.ErrNoRows when no user matches.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ExistsByUsernameOrEmail reports whether any user already holds the
// given username or email. Used as a pre-check before registration;
// the unique indexes remain the authoritative guard.
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username=? OR email=? LIMIT 1",
		strings.TrimSpace(username), NormalizeEmail(email)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UsernameTakenByOther reports whether a user other than excludeID
// already holds the given username. Used by profile update.
func (r *UserRepo) UsernameTakenByOther(ctx context.Context, username string, excludeID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username=? AND id<>? LIMIT 1",
		strings.TrimSpace(username), excludeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ProfileUpdate carries the optional fields UpdateByID may change.
// Nil pointers leave the column untouched.
type ProfileUpdate struct {
	Username     *string
	PasswordHash *string
}

// UpdateByID applies a partial update and returns the fresh record.
// Returns sql.ErrNoRows when the user no longer exists and
// ErrDuplicate when the new username collides with another user.
func (r *UserRepo) UpdateByID(ctx context.Context, id uint64, upd ProfileUpdate) (model.User, error) {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if upd.Username != nil {
		sets = append(sets, "username=?")
		args = append(args, strings.TrimSpace(*upd.Username))
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
		return model.User{}, translateDup(err)
	}
	// Read back to pick up updated_at and to surface sql.ErrNoRows if
	// the row vanished between check and write.
	return r.FindByID(ctx, id)
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// translateDup maps a MySQL ER_DUP_ENTRY to ErrDuplicate and passes
// every other error through untouched.
func translateDup(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}
