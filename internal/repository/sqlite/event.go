package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const eventCols = `id, title, description, event_date, event_time, location, event_type, city_id, created_at, updated_at`

type eventRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewEventRepository(db *sql.DB, clock repository.Clock) repository.EventRepository {
	return &eventRepository{db: db, clock: clock}
}

func scanEvent(row scanner) (model.Event, error) {
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
	if err := ensureDB(r.db); err != nil {
		return model.Event{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO events (title, description, event_date, event_time, location, event_type, city_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+eventCols,
		e.Title, e.Description, e.EventDate.UTC(), e.EventTime, e.Location, e.EventType, e.CityID, r.clock.Stamp(),
	)
	return one(row, scanEvent)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (model.Event, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Event{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+eventCols+` FROM events WHERE id = ?`, id), scanEvent)
}

func (r *eventRepository) Update(ctx context.Context, e model.Event) (model.Event, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Event{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE events
		 SET title = ?, description = ?, event_date = ?, event_time = ?, location = ?,
		     event_type = ?, city_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+eventCols,
		e.Title, e.Description, e.EventDate.UTC(), e.EventTime, e.Location, e.EventType, e.CityID, r.clock.Stamp(), e.ID,
	)
	return one(row, scanEvent)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "events", id)
}

func (r *eventRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Event], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Event]{}, err
	}
	return listPage(ctx, getQ(ctx, r.db), "events", eventCols, "event_date DESC, id DESC", conds{}, p, scanEvent)
}

var _ repository.EventRepository = (*eventRepository)(nil)
