package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/troopdesk/troopdesk-backend/internal/model"
)

const activityColumns = `id, title, type, date, time, location, capacity, description, created_at, updated_at`

// ActivityRepository handles activity data access.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// List retrieves all activities in the requested date order.
func (r *ActivityRepository) List(ctx context.Context, sort model.ActivitySort) ([]model.Activity, error) {
	order := " ORDER BY date DESC, time DESC, id"
	if sort == model.ActivitySortDateAsc {
		order = " ORDER BY date ASC, time ASC, id"
	}

	rows, err := r.pool.Query(ctx, `SELECT `+activityColumns+` FROM activities`+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// GetByID retrieves an activity by its ID.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	a, err := scanActivity(r.pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new activity.
func (r *ActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO activities (title, type, date, time, location, capacity, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		a.Title, a.Type, a.Date.Time, a.Time, a.Location, a.Capacity, a.Description,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func scanActivity(row pgx.Row) (model.Activity, error) {
	var (
		a    model.Activity
		date time.Time
	)
	err := row.Scan(&a.ID, &a.Title, &a.Type, &date, &a.Time, &a.Location,
		&a.Capacity, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Activity{}, err
	}
	a.Date = model.DateOf(date)
	return a, nil
}
