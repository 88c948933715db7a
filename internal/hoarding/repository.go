package hoarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, h *Hoarding) error
	GetByID(ctx context.Context, id string) (*Hoarding, error)
	List(ctx context.Context, filter Filter) ([]*Hoarding, int, error)
	Update(ctx context.Context, h *Hoarding) error
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, fileID *string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const hoardingColumns = "id, location, width, height, daily_price, status, image_file_id, description, created_by, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, h *Hoarding) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hoardings").
		Columns("location", "width", "height", "daily_price", "status", "description", "created_by").
		Values(h.Location, h.Width, h.Height, h.DailyPrice, h.Status, h.Description, h.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hoarding query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return fmt.Errorf("create hoarding failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hoarding, error) {
	query := `SELECT ` + hoardingColumns + ` FROM public.hoardings WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	var h Hoarding
	if err := row.Scan(
		&h.ID, &h.Location, &h.Width, &h.Height, &h.DailyPrice, &h.Status,
		&h.ImageFileID, &h.Description, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hoarding failed: %w", err)
	}
	return &h, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hoarding, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "location", "width", "height", "daily_price", "status",
		"image_file_id", "description", "created_by", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.hoardings")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": "%" + filter.Location + "%"})
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"daily_price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"daily_price": *filter.MaxPrice})
	}

	// Sorting
	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hoardings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hoardings failed: %w", err)
	}
	defer rows.Close()

	var hoardings []*Hoarding
	var total int

	for rows.Next() {
		var h Hoarding
		if err := rows.Scan(
			&h.ID, &h.Location, &h.Width, &h.Height, &h.DailyPrice, &h.Status,
			&h.ImageFileID, &h.Description, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hoarding failed: %w", err)
		}
		hoardings = append(hoardings, &h)
	}

	return hoardings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *Hoarding) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hoardings").
		Set("location", h.Location).
		Set("width", h.Width).
		Set("height", h.Height).
		Set("daily_price", h.DailyPrice).
		Set("status", h.Status).
		Set("description", h.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hoarding query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hoarding failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hoardings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hoarding query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hoarding failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetImage(ctx context.Context, id string, fileID *string) error {
	const query = `
		UPDATE public.hoardings
		SET image_file_id = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, fileID, id)
	if err != nil {
		return fmt.Errorf("set hoarding image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
