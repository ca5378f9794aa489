package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const eventCols = `id, title, description, event_date, event_time, location, event_type, city_id, created_at, updated_at`

type eventRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewEventRepository(pool *pgxpool.Pool, clock repository.Clock) repository.EventRepository {
	return &eventRepository{pool: pool, clock: clock}
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var (
		e       model.Event
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EventTime, &e.Location,
		&e.EventType, &e.CityID, &created, &updated); err != nil {
		return model.Event{}, err
	}
	e.EventDate = e.EventDate.UTC()
	setTimestamps(&e.Timestamps, created, updated)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e model.Event) (model.Event, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Event{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO events (title, description, event_date, event_time, location, event_type, city_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+eventCols,
		e.Title, e.Description, e.EventDate.UTC(), e.EventTime, e.Location, e.EventType, e.CityID, r.clock.Stamp(),
	)
	return one(row, scanEvent)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (model.Event, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Event{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+eventCols+` FROM events WHERE id = $1`, id), scanEvent)
}

func (r *eventRepository) Update(ctx context.Context, e model.Event) (model.Event, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Event{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE events
		 SET title = $2, description = $3, event_date = $4, event_time = $5, location = $6,
		     event_type = $7, city_id = $8, updated_at = $9
		 WHERE id = $1
		 RETURNING `+eventCols,
		e.ID, e.Title, e.Description, e.EventDate.UTC(), e.EventTime, e.Location, e.EventType, e.CityID, r.clock.Stamp(),
	)
	return one(row, scanEvent)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "events", id)
}

func (r *eventRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Event], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Event]{}, err
	}
	return listPage(ctx, getQ(ctx, r.pool), "events", eventCols, "event_date DESC, id DESC", conds{}, p, scanEvent)
}

var _ repository.EventRepository = (*eventRepository)(nil)
