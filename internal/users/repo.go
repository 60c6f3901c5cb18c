package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, user User) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, xp, role, is_active, profile_picture, created_at)
		VALUES ($1, $2, $3, 0, $4, true, $5, $6)
		RETURNING id
	`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ProfilePicture,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}

	return id, nil
}

const selectUser = `
	SELECT id, username, email, password_hash, xp, role, is_active, profile_picture, created_at
	FROM users
`

func (r *Repo) GetByID(ctx context.Context, id int64) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	return r.getOne(ctx, selectUser+"WHERE id = $1", id)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	return r.getOne(ctx, selectUser+"WHERE username = $1", username)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	return r.getOne(ctx, selectUser+"WHERE lower(email) = lower($1)", email)
}

func (r *Repo) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.XP,
		&u.Role,
		&u.IsActive,
		&u.ProfilePicture,
		&u.CreatedAt,
	)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) FollowCounts(ctx context.Context, userID int64) (followers, following int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.followCounts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM follow WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follow WHERE follower_id = $1)
	`, userID).Scan(&followers, &following)
	return followers, following, err
}

func (r *Repo) IsFollowing(ctx context.Context, followerID, followeeID int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.isFollowing")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follow WHERE follower_id = $1 AND followee_id = $2)
	`, followerID, followeeID).Scan(&exists)
	return exists, err
}

// Follow is idempotent, following twice keeps a single row.
func (r *Repo) Follow(ctx context.Context, followerID, followeeID int64, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.follow")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		INSERT INTO follow (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`, followerID, followeeID, at)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *Repo) Unfollow(ctx context.Context, followerID, followeeID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.unfollow")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		DELETE FROM follow WHERE follower_id = $1 AND followee_id = $2
	`, followerID, followeeID)
	return err
}

func (r *Repo) SavePushSubscription(ctx context.Context, userID int64, subscription json.RawMessage) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.savePushSubscription")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE users SET push_subscription = $2 WHERE id = $1
	`, userID, []byte(subscription))
	if err != nil {
		return fmt.Errorf("update push subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
