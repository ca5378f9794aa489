package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const stationCols = `id, station_code, name, address, services, accessibility, station_type, province, city_id, created_at, updated_at`

type stationRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewStationRepository(pool *pgxpool.Pool, clock repository.Clock) repository.StationRepository {
	return &stationRepository{pool: pool, clock: clock}
}

func scanStation(row pgx.Row) (model.Station, error) {
	var (
		s       model.Station
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&s.ID, &s.StationCode, &s.Name, &s.Address, &s.Services, &s.Accessibility,
		&s.StationType, &s.Province, &s.CityID, &created, &updated); err != nil {
		return model.Station{}, err
	}
	setTimestamps(&s.Timestamps, created, updated)
	return s, nil
}

func (r *stationRepository) Create(ctx context.Context, s model.Station) (model.Station, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Station{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO stations (station_code, name, address, services, accessibility, station_type, province, city_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+stationCols,
		s.StationCode, s.Name, s.Address, nonNil(s.Services), nonNil(s.Accessibility), s.StationType, s.Province, s.CityID, r.clock.Stamp(),
	)
	return one(row, scanStation)
}

func (r *stationRepository) GetByID(ctx context.Context, id int64) (model.Station, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Station{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+stationCols+` FROM stations WHERE id = $1`, id), scanStation)
}

func (r *stationRepository) Update(ctx context.Context, s model.Station) (model.Station, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Station{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE stations
		 SET station_code = $2, name = $3, address = $4, services = $5, accessibility = $6,
		     station_type = $7, province = $8, city_id = $9, updated_at = $10
		 WHERE id = $1
		 RETURNING `+stationCols,
		s.ID, s.StationCode, s.Name, s.Address, nonNil(s.Services), nonNil(s.Accessibility), s.StationType, s.Province, s.CityID, r.clock.Stamp(),
	)
	return one(row, scanStation)
}

func (r *stationRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "stations", id)
}

func (r *stationRepository) List(ctx context.Context, f repository.StationFilter, p repository.Page) (repository.PageResult[model.Station], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Station]{}, err
	}
	var c conds
	if f.StationType != "" {
		c.add("station_type = $%d", f.StationType)
	}
	if f.Province != "" {
		c.add("province ILIKE $%d", repository.LikePattern(f.Province))
	}
	if f.CityID != nil {
		c.add("city_id = $%d", *f.CityID)
	}
	return listPage(ctx, getQ(ctx, r.pool), "stations", stationCols, "name ASC, id ASC", c, p, scanStation)
}

func (r *stationRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.pool), "stations", conds{})
}

func (r *stationRepository) Recent(ctx context.Context, limit int) ([]model.Station, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.pool), "stations", stationCols, conds{}, limit, scanStation)
}

var _ repository.StationRepository = (*stationRepository)(nil)
