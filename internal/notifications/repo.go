package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, n Notification) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int64
	if err = r.db.QueryRow(ctx, `
		INSERT INTO notification (recipient_id, sender_id, post_id, type, comment_text, read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id
	`,
		n.RecipientID,
		n.Sender.ID,
		n.PostID,
		n.Type,
		n.CommentText,
		n.CreatedAt,
	).Scan(&id); err != nil {
		return -1, fmt.Errorf("insert notification: %w", err)
	}

	return id, nil
}

// ListForRecipient returns up to limit notifications created after since, newest first.
func (r *Repo) ListForRecipient(ctx context.Context, recipientID int64, since time.Time, limit int) (_ []Notification, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.listForRecipient")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.recipient_id, n.post_id, n.type, n.comment_text, n.read, n.created_at,
			u.id, u.username, u.profile_picture
		FROM notification n
		JOIN users u ON u.id = n.sender_id
		WHERE n.recipient_id = $1 AND n.created_at > $2
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $3
	`, recipientID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Notification
	for rows.Next() {
		var n Notification
		if err = rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.PostID,
			&n.Type,
			&n.CommentText,
			&n.Read,
			&n.CreatedAt,
			&n.Sender.ID,
			&n.Sender.Username,
			&n.Sender.ProfilePicture,
		); err != nil {
			return nil, err
		}
		list = append(list, n)
	}

	return list, rows.Err()
}

// MarkAllRead returns how many unread notifications were updated.
func (r *Repo) MarkAllRead(ctx context.Context, recipientID int64) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.markAllRead")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE notification SET read = true WHERE recipient_id = $1 AND NOT read
	`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
