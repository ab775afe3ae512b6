package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	interpretersTable = "interpreters"
	queryTimeout      = 5 * time.Second
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	interpreterColumns = []string{
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"city",
		"state",
		"metro",
		"zip_code",
		"country",
		"lat",
		"lng",
		"source_language",
		"target_language",
		"is_active",
		"is_available",
		"years_of_experience",
		"hourly_rate",
		"proficiency_level",
		"certification_type",
		"rating",
		"created_at",
	}
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connStr string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (repo *Repository) Close() {
	repo.pool.Close()
}

func (repo *Repository) Pool() *pgxpool.Pool {
	return repo.pool
}

func (repo *Repository) Ping(ctx context.Context) error {
	return repo.pool.Ping(ctx)
}

func (repo *Repository) Query(ctx context.Context, filter query.Filter, sort query.Sort, limit, offset int) ([]interpreters.Interpreter, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	b := psql.Select(interpreterColumns...).
		From(interpretersTable).
		OrderBy(sort.Columns()...).
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if !filter.Empty() {
		b = b.Where(filter.Sqlizer())
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build interpreters query: %w", err)
	}

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, unavailable("could not query interpreters", err)
	}
	defer rows.Close()

	results, err := scanInterpreters(rows)
	if err != nil {
		return nil, unavailable("could not scan interpreters", err)
	}
	return results, nil
}

func (repo *Repository) Count(ctx context.Context, filter query.Filter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	b := psql.Select("COUNT(*)").From(interpretersTable)
	if !filter.Empty() {
		b = b.Where(filter.Sqlizer())
	}

	q, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build count query: %w", err)
	}

	var count int
	if err := repo.pool.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		return 0, unavailable("could not count interpreters", err)
	}
	return count, nil
}

func (repo *Repository) GetInterpreter(ctx context.Context, id int64) (*interpreters.Interpreter, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := psql.Select(interpreterColumns...).From(interpretersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build interpreter query: %w", err)
	}

	i, err := scanInterpreter(repo.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interpreters.ErrNotFound
		}
		return nil, unavailable("could not query interpreter with id", err)
	}
	return &i, nil
}

// Languages returns the distinct source and target languages of active
// interpreters, sorted.
func (repo *Repository) Languages(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := repo.pool.Query(ctx,
		`SELECT language FROM (
			SELECT source_language AS language FROM interpreters WHERE is_active AND source_language <> ''
			UNION
			SELECT target_language FROM interpreters WHERE is_active AND target_language <> ''
		) l ORDER BY language`)
	if err != nil {
		return nil, unavailable("could not query languages", err)
	}

	languages, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, unavailable("could not scan languages", err)
	}
	return languages, nil
}

// ListUngeocoded returns records without usable coordinates, oldest first.
func (repo *Repository) ListUngeocoded(ctx context.Context, limit int) ([]interpreters.Interpreter, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := psql.Select(interpreterColumns...).
		From(interpretersTable).
		Where(sq.Or{
			sq.Eq{"lat": nil},
			sq.Eq{"lng": nil},
			sq.And{sq.Eq{"lat": 0}, sq.Eq{"lng": 0}},
		}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build ungeocoded query: %w", err)
	}

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, unavailable("could not query ungeocoded interpreters", err)
	}
	defer rows.Close()

	return scanInterpreters(rows)
}

func (repo *Repository) UpdateCoordinates(ctx context.Context, id int64, p geo.Point) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := repo.pool.Exec(ctx,
		`UPDATE interpreters SET lat = $1, lng = $2, updated_at = now() WHERE id = $3`,
		p.Lat, p.Lng, id)
	if err != nil {
		return unavailable("could not update interpreter coordinates", err)
	}
	if tag.RowsAffected() == 0 {
		return interpreters.ErrNotFound
	}
	return nil
}

// Create inserts i and returns its id. Records are normally written by the
// admin CRUD service; this is used by imports and tests.
func (repo *Repository) Create(ctx context.Context, i interpreters.Interpreter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}

	q, args, err := psql.Insert(interpretersTable).
		Columns(interpreterColumns[1:]...).
		Values(
			i.FirstName, i.LastName, i.Email, i.Phone, i.City, i.State, i.Metro, i.ZipCode, i.Country,
			i.Lat, i.Lng, i.SourceLanguage, i.TargetLanguage, i.IsActive, i.IsAvailable,
			i.YearsOfExperience, i.HourlyRate, i.ProficiencyLevel, i.CertificationType, i.Rating, i.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build insert: %w", err)
	}

	var id int64
	if err := repo.pool.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, unavailable("could not insert interpreter", err)
	}
	return id, nil
}

func scanInterpreters(rows pgx.Rows) ([]interpreters.Interpreter, error) {
	results := make([]interpreters.Interpreter, 0)
	for rows.Next() {
		i, err := scanInterpreter(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, i)
	}
	return results, rows.Err()
}

func scanInterpreter(row pgx.Row) (interpreters.Interpreter, error) {
	var i interpreters.Interpreter
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.Phone,
		&i.City,
		&i.State,
		&i.Metro,
		&i.ZipCode,
		&i.Country,
		&i.Lat,
		&i.Lng,
		&i.SourceLanguage,
		&i.TargetLanguage,
		&i.IsActive,
		&i.IsAvailable,
		&i.YearsOfExperience,
		&i.HourlyRate,
		&i.ProficiencyLevel,
		&i.CertificationType,
		&i.Rating,
		&i.CreatedAt,
	)
	return i, err
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, interpreters.ErrStoreUnavailable, err)
}
