package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

var (
	ErrAlreadyCompleted = errors.New("day already completed on this date")
	ErrUserNotFound     = errors.New("user not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// RecordCompletion stores the completion and applies the decided xp in one
// transaction. The user row stays locked until commit, so the week state seen
// by decide cannot change underneath it.
func (r *Repo) RecordCompletion(
	ctx context.Context,
	c Completion,
	week WeekWindow,
	decide AwardFunc,
) (_ *RecordResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.recordCompletion")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int64("user_id", c.UserID),
		attribute.String("day_name", c.DayName),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var lockedID int64
	if err = tx.QueryRow(ctx, `
		SELECT id FROM users WHERE id = $1 FOR UPDATE
	`, c.UserID).Scan(&lockedID); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	before, err := weekDayNames(ctx, tx, c.UserID, c.PlanID, week)
	if err != nil {
		return nil, fmt.Errorf("read week before: %w", err)
	}

	result := &RecordResult{Before: before}
	err = tx.QueryRow(ctx, `
		INSERT INTO completion (user_id, plan_id, day_name, completed_at, completed_on)
		VALUES ($1, $2, $3, $4, $5::date)
		RETURNING id
	`,
		c.UserID,
		c.PlanID,
		c.DayName,
		c.CompletedAt,
		c.CompletedOn,
	).Scan(&result.CompletionID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("insert completion: %w", err)
	}

	result.After, err = weekDayNames(ctx, tx, c.UserID, c.PlanID, week)
	if err != nil {
		return nil, fmt.Errorf("read week after: %w", err)
	}

	result.Award = decide(result.Before, result.After)
	if err = tx.QueryRow(ctx, `
		UPDATE users SET xp = xp + $2
		WHERE id = $1
		RETURNING xp
	`, c.UserID, result.Award.Total()).Scan(&result.TotalXP); err != nil {
		return nil, fmt.Errorf("add xp: %w", err)
	}

	return result, nil
}

func weekDayNames(ctx context.Context, tx pgx.Tx, userID, planID int64, week WeekWindow) ([]string, error) {
	rows, err := tx.Query(ctx, `
		SELECT DISTINCT day_name
		FROM completion
		WHERE user_id = $1 AND plan_id = $2
			AND completed_on >= $3::date AND completed_on < $4::date
		ORDER BY day_name
	`, userID, planID, week.From, week.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *Repo) CountCompletions(ctx context.Context, userID int64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.countCompletions")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var count int
	if err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM completion WHERE user_id = $1
	`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CompletionDates returns the distinct completion dates of a user, newest first.
func (r *Repo) CompletionDates(ctx context.Context, userID int64) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.completionDates")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT to_char(completed_on, 'YYYY-MM-DD') AS day
		FROM completion
		WHERE user_id = $1
		ORDER BY day DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err = rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// DateCounts returns completions per calendar date, starting at the given date key.
func (r *Repo) DateCounts(ctx context.Context, userID int64, from string) (_ []DateCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.dateCounts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT to_char(completed_on, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM completion
		WHERE user_id = $1 AND completed_on >= $2::date
		GROUP BY day
		ORDER BY day
	`, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DateCount
	for rows.Next() {
		var dc DateCount
		if err = rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}

	return counts, rows.Err()
}

func (r *Repo) DayFrequency(ctx context.Context, userID int64) (_ []DayCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.dayFrequency")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT day_name, COUNT(*) AS cnt
		FROM completion
		WHERE user_id = $1
		GROUP BY day_name
		ORDER BY cnt DESC, day_name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var dc DayCount
		if err = rows.Scan(&dc.DayName, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}

	return counts, rows.Err()
}

func (r *Repo) ListCompletions(ctx context.Context, userID int64, limit int) (_ []Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.listCompletions")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, plan_id, day_name, completed_at, to_char(completed_on, 'YYYY-MM-DD')
		FROM completion
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []Completion
	for rows.Next() {
		var c Completion
		if err = rows.Scan(
			&c.ID,
			&c.UserID,
			&c.PlanID,
			&c.DayName,
			&c.CompletedAt,
			&c.CompletedOn,
		); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}
