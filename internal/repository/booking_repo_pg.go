package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/littlelemon/internal/domain"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	MarkDueForReminder(ctx context.Context, from, until time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	var date time.Time
	if err := row.Scan(&b.ID, &b.Name, &b.NoOfGuests, &date, &b.ReminderSentAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	b.BookingDate = domain.NewBookingTime(date)
	return nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, no_of_guests, booking_date, reminder_sent_at, created_at, updated_at FROM bookings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, no_of_guests, booking_date, reminder_sent_at, created_at, updated_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (name, no_of_guests, booking_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, booking.Name, booking.NoOfGuests, booking.BookingDate.Time).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET name=$1, no_of_guests=$2, booking_date=$3, updated_at=now()
		WHERE id=$4
		RETURNING created_at, updated_at`, booking.Name, booking.NoOfGuests, booking.BookingDate.Time, booking.ID)
	if err := row.Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkDueForReminder claims bookings starting inside [from, until) that have
// not been reminded yet, so concurrent sweeps never double-send.
func (r *PGBookingRepository) MarkDueForReminder(ctx context.Context, from, until time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET reminder_sent_at=now(), updated_at=now()
		WHERE reminder_sent_at IS NULL AND booking_date >= $1 AND booking_date < $2
		RETURNING id, name, no_of_guests, booking_date, reminder_sent_at, created_at, updated_at`, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		due = append(due, b)
	}
	return due, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
