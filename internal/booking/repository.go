package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusUpdate describes a status transition and its optional side effect
// on the referenced hoarding. Both writes happen in one transaction.
type StatusUpdate struct {
	BookingID      string
	Status         Status
	HoardingID     string
	HoardingStatus string // empty = leave the hoarding untouched
}

type Repository interface {
	// CreateAdmitted inserts the booking after re-checking, under a row lock
	// on the hoarding, that the hoarding is still available and that no
	// pending or approved booking overlaps the requested dates. The lock
	// serializes concurrent admissions for the same hoarding.
	CreateAdmitted(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, u StatusUpdate) error
	Delete(ctx context.Context, id string) error

	// HasOverlap checks if any pending or approved booking for the hoarding
	// overlaps the half-open range [start, end).
	HasOverlap(ctx context.Context, hoardingID string, start, end time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Overlap predicate over half-open ranges [start, end): two bookings
// conflict when each starts before the other ends. A booking ending at an
// instant does not collide with one starting at that same instant.
const overlapCondition = `
	status IN ('pending', 'approved')
	AND start_date < $3
	AND end_date > $2
`

func (r *pgxRepository) CreateAdmitted(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin admission tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the hoarding row so concurrent admissions for the same hoarding
	// serialize before the overlap scan.
	var hoardingStatus string
	err = tx.QueryRow(ctx,
		`SELECT status FROM public.hoardings WHERE id = $1 FOR UPDATE`,
		b.HoardingID,
	).Scan(&hoardingStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHoardingNotFound
		}
		return fmt.Errorf("lock hoarding failed: %w", err)
	}
	if hoardingStatus != "available" {
		return ErrHoardingUnavailable
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE hoarding_id = $1 AND `+overlapCondition+`
		)`,
		b.HoardingID, b.StartDate, b.EndDate,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if exists {
		return ErrDateConflict
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO public.bookings
			(hoarding_id, user_id, start_date, end_date, status, total_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		b.HoardingID, b.UserID, b.StartDate, b.EndDate, b.Status, b.TotalAmount, b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit admission tx failed: %w", err)
	}
	return nil
}

const bookingSelectColumns = `
	b.id, b.hoarding_id, h.location, h.daily_price,
	b.user_id, u.name, u.email,
	b.start_date, b.end_date, b.status, b.total_amount,
	b.payment_status, b.payment_txn_id, b.payment_method, b.payment_date,
	b.created_at, b.updated_at
`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.HoardingID, &b.HoardingLocation, &b.HoardingDailyPrice,
		&b.UserID, &b.UserName, &b.UserEmail,
		&b.StartDate, &b.EndDate, &b.Status, &b.TotalAmount,
		&b.PaymentStatus, &b.PaymentTxnID, &b.PaymentMethod, &b.PaymentDate,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingSelectColumns + `
		FROM public.bookings b
		JOIN public.hoardings h ON b.hoarding_id = h.id
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
	`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.hoarding_id", "h.location", "h.daily_price",
		"b.user_id", "u.name", "u.email",
		"b.start_date", "b.end_date", "b.status", "b.total_amount",
		"b.payment_status", "b.payment_txn_id", "b.payment_method", "b.payment_date",
		"b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.hoardings h ON b.hoarding_id = h.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.HoardingID != "" {
		query = query.Where(squirrel.Eq{"b.hoarding_id": filter.HoardingID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Sorting; listing defaults to newest first
	orderBy := "b.created_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, u StatusUpdate) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin status tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`UPDATE public.bookings SET status = $1, updated_at = now() WHERE id = $2`,
		u.Status, u.BookingID,
	)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if u.HoardingStatus != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE public.hoardings SET status = $1, updated_at = now() WHERE id = $2`,
			u.HoardingStatus, u.HoardingID,
		); err != nil {
			return fmt.Errorf("update hoarding status failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit status tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, hoardingID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE hoarding_id = $1 AND ` + overlapCondition + `
		)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, hoardingID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
