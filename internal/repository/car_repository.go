package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"astra/internal/database"
	"astra/internal/domain/car"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCarNotFound = errors.New("car not found")

type CarListFilter struct {
	Query        string
	Manufacturer string
	Limit        int
	Offset       int
}

type CarUpsert struct {
	Manufacturer string
	Model        string
	Year         int
	BodyType     *string
	Price        *int
	EngineInfo   *string
	Transmission *string
	FuelType     *string
	Description  *string
	Features     []string
}

// Enrichment carries the completion service's best-effort guesses for a
// sparse car record. Nil fields leave the stored value alone.
type Enrichment struct {
	BodyType    *string
	Price       *int
	PrimaryUse  *string
	Description *string
	Features    []string
}

type CarRepository interface {
	ListCars(ctx context.Context, filter CarListFilter) ([]car.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (car.Car, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Manufacturers(ctx context.Context) ([]string, error)
	UpsertCars(ctx context.Context, cars []CarUpsert) error
	ApplyEnrichment(ctx context.Context, id uuid.UUID, e Enrichment) error
}

type PostgresCarRepository struct {
	db database.DB
}

func NewPostgresCarRepository(db database.DB) *PostgresCarRepository {
	return &PostgresCarRepository{db: db}
}

const carColumns = `id, manufacturer, model, year, body_type, price, primary_use,
	engine_info, transmission, fuel_type, mpg, description, features, created_at`

func (r *PostgresCarRepository) ListCars(ctx context.Context, filter CarListFilter) ([]car.Car, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := strings.TrimSpace(filter.Query)
	manufacturer := strings.TrimSpace(filter.Manufacturer)

	rows, err := r.db.Query(ctx,
		`SELECT `+carColumns+`
		 FROM cars
		 WHERE ($1 = '' OR manufacturer ILIKE '%'||$1||'%'
		        OR model ILIKE '%'||$1||'%'
		        OR COALESCE(body_type, '') ILIKE '%'||$1||'%'
		        OR COALESCE(engine_info, '') ILIKE '%'||$1||'%'
		        OR COALESCE(fuel_type, '') ILIKE '%'||$1||'%')
		   AND ($2 = '' OR manufacturer ILIKE $2)
		 ORDER BY manufacturer, model, year DESC
		 LIMIT $3 OFFSET $4`,
		q, manufacturer, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCars(rows)
}

func (r *PostgresCarRepository) GetByID(ctx context.Context, id uuid.UUID) (car.Car, error) {
	row := r.db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	c, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return car.Car{}, ErrCarNotFound
		}
		return car.Car{}, err
	}
	return c, nil
}

func (r *PostgresCarRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cars WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresCarRepository) Manufacturers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT manufacturer FROM cars ORDER BY manufacturer`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCarRepository) UpsertCars(ctx context.Context, cars []CarUpsert) error {
	if len(cars) == 0 {
		return nil
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, c := range cars {
			if strings.TrimSpace(c.Manufacturer) == "" || strings.TrimSpace(c.Model) == "" || c.Year == 0 {
				continue
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO cars
				   (id, manufacturer, model, year, body_type, price, engine_info,
				    transmission, fuel_type, description, features)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 ON CONFLICT (manufacturer, model, year) DO UPDATE SET
				   body_type = COALESCE(EXCLUDED.body_type, cars.body_type),
				   price = COALESCE(EXCLUDED.price, cars.price),
				   engine_info = COALESCE(EXCLUDED.engine_info, cars.engine_info),
				   transmission = COALESCE(EXCLUDED.transmission, cars.transmission),
				   fuel_type = COALESCE(EXCLUDED.fuel_type, cars.fuel_type),
				   description = COALESCE(EXCLUDED.description, cars.description),
				   features = CASE WHEN cardinality(EXCLUDED.features) > 0 THEN EXCLUDED.features ELSE cars.features END`,
				c.Manufacturer, c.Model, c.Year, c.BodyType, c.Price, c.EngineInfo,
				c.Transmission, c.FuelType, c.Description, featuresOrEmpty(c.Features),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresCarRepository) ApplyEnrichment(ctx context.Context, id uuid.UUID, e Enrichment) error {
	_, err := r.db.Exec(ctx,
		`UPDATE cars SET
		   body_type = COALESCE(body_type, $2),
		   price = COALESCE(price, $3),
		   primary_use = COALESCE(primary_use, $4),
		   description = COALESCE(description, $5),
		   features = CASE WHEN cardinality(features) = 0 AND $6::text[] IS NOT NULL THEN $6 ELSE features END
		 WHERE id = $1`,
		id, e.BodyType, e.Price, e.PrimaryUse, e.Description, e.Features,
	)
	return err
}

func featuresOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func scanCars(rows database.Rows) ([]car.Car, error) {
	out := make([]car.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCar(row database.Row) (car.Car, error) {
	var c car.Car
	err := row.Scan(
		&c.ID, &c.Manufacturer, &c.Model, &c.Year, &c.BodyType, &c.Price,
		&c.PrimaryUse, &c.EngineInfo, &c.Transmission, &c.FuelType, &c.MPG,
		&c.Description, &c.Features, &c.CreatedAt,
	)
	return c, err
}
