package reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

var ErrReminderNotFound = errors.New("reminder not found")

const reminderColumns = `id, user_id, type, message, time, days, is_active, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, reminder Reminder) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reminders.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int64
	if err = r.db.QueryRow(ctx, `
		INSERT INTO reminder (user_id, type, message, time, days, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		reminder.UserID,
		reminder.Type,
		reminder.Message,
		reminder.Time,
		reminder.Days,
		reminder.IsActive,
		reminder.CreatedAt,
	).Scan(&id); err != nil {
		return -1, fmt.Errorf("insert reminder: %w", err)
	}

	return id, nil
}

// Update replaces the editable fields of a reminder owned by reminder.UserID.
func (r *Repo) Update(ctx context.Context, reminder Reminder) (_ *Reminder, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reminders.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	updated, err := scanReminder(r.db.QueryRow(ctx, `
		UPDATE reminder
		SET type = $3, message = $4, time = $5, days = $6, is_active = $7
		WHERE id = $1 AND user_id = $2
		RETURNING `+reminderColumns,
		reminder.ID,
		reminder.UserID,
		reminder.Type,
		reminder.Message,
		reminder.Time,
		reminder.Days,
		reminder.IsActive,
	))
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reminders.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReminderNotFound
	}

	return nil
}

func (r *Repo) ListForUser(ctx context.Context, userID int64) (_ []Reminder, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reminders.listForUser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.list(ctx, `
		SELECT `+reminderColumns+`
		FROM reminder
		WHERE user_id = $1
		ORDER BY time, id
	`, userID)
}

// ListDue returns active reminders set for the given clock time on the given weekday.
func (r *Repo) ListDue(ctx context.Context, clock, weekday string) (_ []Reminder, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reminders.listDue")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.user_id, r.type, r.message, r.time, r.days, r.is_active, r.created_at,
			u.push_subscription
		FROM reminder r
		JOIN users u ON u.id = r.user_id
		WHERE r.is_active AND r.time = $1 AND $2 = ANY(r.days)
		ORDER BY r.id
	`, clock, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []Reminder
	for rows.Next() {
		var (
			reminder     Reminder
			subscription []byte
		)
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.Type,
			&reminder.Message,
			&reminder.Time,
			&reminder.Days,
			&reminder.IsActive,
			&reminder.CreatedAt,
			&subscription,
		); err != nil {
			return nil, err
		}
		reminder.PushSubscription = subscription
		due = append(due, reminder)
	}

	return due, rows.Err()
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Reminder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *reminder)
	}

	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (*Reminder, error) {
	var reminder Reminder
	if err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Type,
		&reminder.Message,
		&reminder.Time,
		&reminder.Days,
		&reminder.IsActive,
		&reminder.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reminder, nil
}
