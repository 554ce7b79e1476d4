package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dineflow/dineflow/internal/domain"
)

type ReservationRepo struct {
	db querier
}

func NewReservationRepo(db querier) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (id, tenant_id, table_id, customer_name, customer_email,
		        customer_phone, party_size, reservation_date, reservation_time,
		        special_requests, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		res.ID, res.TenantID, res.TableID, res.CustomerName, res.CustomerEmail,
		res.CustomerPhone, res.PartySize, res.Date, int(res.Time),
		res.SpecialRequests, res.Status, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("reservationRepo.Create: %w", err)
	}

	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx,
		reservationColumns+` FROM reservations WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)

	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reservationRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.GetByID: %w", err)
	}

	return res, nil
}

func (r *ReservationRepo) List(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	query := reservationColumns + ` FROM reservations WHERE tenant_id = $1`
	args := []any{tenantID}

	if date != nil {
		args = append(args, date.UTC().Format("2006-01-02"))
		query += fmt.Sprintf(" AND reservation_date = $%d", len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY reservation_date DESC, reservation_time LIMIT 1000`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.List: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows, "reservationRepo.List")
}

func (r *ReservationRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.ReservationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3`,
		status, tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("reservationRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reservationRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepo) ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	rows, err := r.db.Query(ctx,
		reservationColumns+`
		 FROM reservations
		 WHERE tenant_id = $1 AND reservation_date = $2 AND status <> 'cancelled'
		 ORDER BY reservation_time
		 LIMIT 1000`,
		tenantID, date.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.ListActiveByDate: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows, "reservationRepo.ListActiveByDate")
}

func (r *ReservationRepo) ListActiveByTable(ctx context.Context, tenantID, tableID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	rows, err := r.db.Query(ctx,
		reservationColumns+`
		 FROM reservations
		 WHERE tenant_id = $1 AND table_id = $2 AND reservation_date = $3 AND status <> 'cancelled'
		 ORDER BY reservation_time
		 LIMIT 1000`,
		tenantID, tableID, date.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.ListActiveByTable: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows, "reservationRepo.ListActiveByTable")
}

const reservationColumns = `SELECT id, tenant_id, table_id, customer_name, customer_email,
        customer_phone, party_size, reservation_date, reservation_time,
        special_requests, status, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		res     domain.Reservation
		minutes int
	)

	err := row.Scan(
		&res.ID, &res.TenantID, &res.TableID, &res.CustomerName, &res.CustomerEmail,
		&res.CustomerPhone, &res.PartySize, &res.Date, &minutes,
		&res.SpecialRequests, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Time = domain.TimeOfDay(minutes)

	return &res, nil
}

func scanReservations(rows pgx.Rows, op string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
