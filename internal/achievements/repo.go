package achievements

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

// ListForUser returns the whole catalog with the user's unlock state filled in.
func (r *Repo) ListForUser(ctx context.Context, userID int64) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.listForUser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.description, a.mascot_image_url, a.criteria_type, a.criteria_value, ua.unlocked_at
		FROM achievement a
		LEFT JOIN user_achievement ua ON ua.achievement_id = a.id AND ua.user_id = $1
		ORDER BY a.criteria_type, a.criteria_value, a.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Achievement
	for rows.Next() {
		var a Achievement
		if err = rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.MascotImageURL,
			&a.Criteria.Type,
			&a.Criteria.Value,
			&a.UnlockedAt,
		); err != nil {
			return nil, err
		}
		a.Unlocked = a.UnlockedAt != nil
		list = append(list, a)
	}

	return list, rows.Err()
}

// Unlock records unlocks for the given achievements and returns the ids that
// were not unlocked before.
func (r *Repo) Unlock(ctx context.Context, userID int64, achievementIDs []int64, at time.Time) (_ []int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.unlock")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if len(achievementIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO user_achievement (user_id, achievement_id, unlocked_at)
		SELECT $1, id, $3 FROM unnest($2::bigint[]) AS id
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		RETURNING achievement_id
	`, userID, achievementIDs, at)
	if err != nil {
		return nil, fmt.Errorf("insert unlocks: %w", err)
	}
	defer rows.Close()

	var unlocked []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, id)
	}

	return unlocked, rows.Err()
}
