package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

var ErrPostNotFound = errors.New("post not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create stores a post by post.Author.ID and returns it with the author filled in.
func (r *Repo) Create(ctx context.Context, post Post) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	created := &Post{
		Likes:    []int64{},
		Comments: []Comment{},
	}
	if err = r.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO post (user_id, text, created_at)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, text, created_at
		)
		SELECT i.id, i.text, i.created_at, u.id, u.username, u.profile_picture
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`, post.Author.ID, post.Text, post.CreatedAt).Scan(
		&created.ID,
		&created.Text,
		&created.CreatedAt,
		&created.Author.ID,
		&created.Author.Username,
		&created.Author.ProfilePicture,
	); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return created, nil
}

// Feed returns posts created after since, newest first. A positive beforeID
// only returns posts older than that one.
func (r *Repo) Feed(ctx context.Context, since time.Time, beforeID int64, limit int) (_ []Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.feed")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.text, p.created_at, u.id, u.username, u.profile_picture
		FROM post p
		JOIN users u ON u.id = p.user_id
		WHERE p.created_at > $1 AND ($2::BIGINT = 0 OR p.id < $2)
		ORDER BY p.id DESC
		LIMIT $3
	`, since, beforeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		feed  []Post
		ids   []int64
		index = map[int64]int{}
	)
	for rows.Next() {
		p := Post{
			Likes:    []int64{},
			Comments: []Comment{},
		}
		if err = rows.Scan(
			&p.ID,
			&p.Text,
			&p.CreatedAt,
			&p.Author.ID,
			&p.Author.Username,
			&p.Author.ProfilePicture,
		); err != nil {
			return nil, err
		}
		index[p.ID] = len(feed)
		ids = append(ids, p.ID)
		feed = append(feed, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(feed) == 0 {
		return feed, nil
	}

	if err = r.fillLikes(ctx, ids, feed, index); err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	if err = r.fillComments(ctx, ids, feed, index); err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	return feed, nil
}

func (r *Repo) fillLikes(ctx context.Context, ids []int64, feed []Post, index map[int64]int) error {
	rows, err := r.db.Query(ctx, `
		SELECT post_id, user_id
		FROM post_like
		WHERE post_id = ANY($1)
		ORDER BY created_at, user_id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID, userID int64
		if err := rows.Scan(&postID, &userID); err != nil {
			return err
		}
		i := index[postID]
		feed[i].Likes = append(feed[i].Likes, userID)
	}
	return rows.Err()
}

func (r *Repo) fillComments(ctx context.Context, ids []int64, feed []Post, index map[int64]int) error {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.post_id, c.text, c.created_at, u.id, u.username, u.profile_picture
		FROM post_comment c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at, c.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.Text,
			&c.CreatedAt,
			&c.Author.ID,
			&c.Author.Username,
			&c.Author.ProfilePicture,
		); err != nil {
			return err
		}
		i := index[c.PostID]
		feed[i].Comments = append(feed[i].Comments, c)
	}
	return rows.Err()
}

// Owner returns the author of a post created after since.
func (r *Repo) Owner(ctx context.Context, postID int64, since time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.owner")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var ownerID int64
	err = r.db.QueryRow(ctx, `
		SELECT user_id FROM post WHERE id = $1 AND created_at > $2
	`, postID, since).Scan(&ownerID)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

// Like reports whether the like is new. Liking twice keeps a single row.
func (r *Repo) Like(ctx context.Context, postID, userID int64, at time.Time) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.like")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO post_like (post_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID, at)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("insert like: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repo) Unlike(ctx context.Context, postID, userID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.unlike")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		DELETE FROM post_like WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	return err
}

// AddComment stores a comment by comment.Author.ID and returns it with the author filled in.
func (r *Repo) AddComment(ctx context.Context, comment Comment) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.posts.addComment")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	created := &Comment{}
	err = r.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO post_comment (post_id, user_id, text, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, post_id, user_id, text, created_at
		)
		SELECT i.id, i.post_id, i.text, i.created_at, u.id, u.username, u.profile_picture
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`, comment.PostID, comment.Author.ID, comment.Text, comment.CreatedAt).Scan(
		&created.ID,
		&created.PostID,
		&created.Text,
		&created.CreatedAt,
		&created.Author.ID,
		&created.Author.Username,
		&created.Author.ProfilePicture,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return created, nil
}
