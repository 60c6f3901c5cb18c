package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

var ErrPlanNotFound = errors.New("plan not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SaveActive stores a plan and makes it the only active plan of its kind for the user.
func (r *Repo) SaveActive(ctx context.Context, plan StoredPlan) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.saveActive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("kind", string(plan.Kind)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
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

	if _, err = tx.Exec(ctx, `
		UPDATE plan SET active = false
		WHERE user_id = $1 AND kind = $2 AND active
	`, plan.UserID, plan.Kind); err != nil {
		return 0, fmt.Errorf("deactivate previous: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO plan (user_id, kind, content, signature, active, created_at)
		VALUES ($1, $2, $3, $4, true, $5)
		RETURNING id
	`,
		plan.UserID,
		plan.Kind,
		plan.Content,
		plan.Signature,
		plan.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert plan: %w", err)
	}

	return id, nil
}

func (r *Repo) GetActive(ctx context.Context, userID int64, kind Kind) (_ *StoredPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getActive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("kind", string(kind)))

	plan := &StoredPlan{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, kind, content, signature, created_at
		FROM plan
		WHERE user_id = $1 AND kind = $2 AND active
	`, userID, kind).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Kind,
		&plan.Content,
		&plan.Signature,
		&plan.CreatedAt,
	)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return plan, nil
}
