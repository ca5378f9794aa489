package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const stationCols = `id, station_code, name, address, services, accessibility, station_type, province, city_id, created_at, updated_at`

type stationRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewStationRepository(db *sql.DB, clock repository.Clock) repository.StationRepository {
	return &stationRepository{db: db, clock: clock}
}

func scanStation(row scanner) (model.Station, error) {
	var (
		s                       model.Station
		services, accessibility stringList
		created                 time.Time
		updated                 *time.Time
	)
	if err := row.Scan(&s.ID, &s.StationCode, &s.Name, &s.Address, &services, &accessibility,
		&s.StationType, &s.Province, &s.CityID, &created, &updated); err != nil {
		return model.Station{}, err
	}
	s.Services, s.Accessibility = services, accessibility
	setTimestamps(&s.Timestamps, created, updated)
	return s, nil
}

func (r *stationRepository) Create(ctx context.Context, s model.Station) (model.Station, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Station{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO stations (station_code, name, address, services, accessibility, station_type, province, city_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+stationCols,
		s.StationCode, s.Name, s.Address, stringList(s.Services), stringList(s.Accessibility), s.StationType, s.Province, s.CityID, r.clock.Stamp(),
	)
	return one(row, scanStation)
}

func (r *stationRepository) GetByID(ctx context.Context, id int64) (model.Station, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Station{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+stationCols+` FROM stations WHERE id = ?`, id), scanStation)
}

func (r *stationRepository) Update(ctx context.Context, s model.Station) (model.Station, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Station{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE stations
		 SET station_code = ?, name = ?, address = ?, services = ?, accessibility = ?,
		     station_type = ?, province = ?, city_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+stationCols,
		s.StationCode, s.Name, s.Address, stringList(s.Services), stringList(s.Accessibility), s.StationType, s.Province, s.CityID, r.clock.Stamp(), s.ID,
	)
	return one(row, scanStation)
}

func (r *stationRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "stations", id)
}

func (r *stationRepository) List(ctx context.Context, f repository.StationFilter, p repository.Page) (repository.PageResult[model.Station], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Station]{}, err
	}
	var c conds
	if f.StationType != "" {
		c.add("station_type = ?", f.StationType)
	}
	if f.Province != "" {
		c.add(`province LIKE ? ESCAPE '\'`, repository.LikePattern(f.Province))
	}
	if f.CityID != nil {
		c.add("city_id = ?", *f.CityID)
	}
	return listPage(ctx, getQ(ctx, r.db), "stations", stationCols, "name ASC, id ASC", c, p, scanStation)
}

func (r *stationRepository) Count(ctx context.Context) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.db), "stations", conds{})
}

func (r *stationRepository) Recent(ctx context.Context, limit int) ([]model.Station, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.db), "stations", stationCols, conds{}, limit, scanStation)
}

var _ repository.StationRepository = (*stationRepository)(nil)
