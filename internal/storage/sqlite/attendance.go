package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/clubledger/internal/models"
)

// FindAttendance returns the attendance for (eventID, athleteID), or nil if none exists.
func (s *SQLiteStore) FindAttendance(ctx context.Context, eventID, athleteID string) (*models.Attendance, error) {
	att := &models.Attendance{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, event_id, athlete_id, confirmed, confirmed_at, created_at
		 FROM attendances WHERE event_id = ? AND athlete_id = ?`,
		eventID, athleteID,
	).Scan(&att.ID, &att.EventID, &att.AthleteID, &att.Confirmed, &att.ConfirmedAt, &att.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	return att, nil
}

// UpsertAttendance creates or updates the attendance keyed by (eventID, athleteID).
func (s *SQLiteStore) UpsertAttendance(ctx context.Context, eventID, athleteID string, confirmed bool, confirmedAt int64) (*models.Attendance, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendances (id, event_id, athlete_id, confirmed, confirmed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (event_id, athlete_id) DO UPDATE SET
		     confirmed = excluded.confirmed,
		     confirmed_at = excluded.confirmed_at`,
		uuid.New().String(), eventID, athleteID, confirmed, confirmedAt, time.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	att, err := s.FindAttendance(ctx, eventID, athleteID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, fmt.Errorf("attendance missing after upsert: event %s athlete %s", eventID, athleteID)
	}
	return att, nil
}

// FindLedgerRow returns the ledger row for (attendanceID, paymentItemID), or nil if none exists.
func (s *SQLiteStore) FindLedgerRow(ctx context.Context, attendanceID, paymentItemID string) (*models.AthletePaymentItem, error) {
	row := &models.AthletePaymentItem{}
	err := s.db.QueryRowContext(ctx,
		`SELECT attendance_id, payment_item_id, confirmed_quantity, paid_quantity, paid, paid_at
		 FROM athlete_payment_items WHERE attendance_id = ? AND payment_item_id = ?`,
		attendanceID, paymentItemID,
	).Scan(&row.AttendanceID, &row.PaymentItemID, &row.ConfirmedQuantity, &row.PaidQuantity, &row.Paid, &row.PaidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger row: %w", err)
	}
	return row, nil
}

// UpsertLedgerRow creates or overwrites the row keyed by (AttendanceID, PaymentItemID).
func (s *SQLiteStore) UpsertLedgerRow(ctx context.Context, row models.AthletePaymentItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO athlete_payment_items
		     (attendance_id, payment_item_id, confirmed_quantity, paid_quantity, paid, paid_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (attendance_id, payment_item_id) DO UPDATE SET
		     confirmed_quantity = excluded.confirmed_quantity,
		     paid_quantity = excluded.paid_quantity,
		     paid = excluded.paid,
		     paid_at = excluded.paid_at`,
		row.AttendanceID, row.PaymentItemID, row.ConfirmedQuantity, row.PaidQuantity, row.Paid, row.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger row: %w", err)
	}
	return nil
}

// DeleteLedgerRow removes the row for (attendanceID, paymentItemID).
func (s *SQLiteStore) DeleteLedgerRow(ctx context.Context, attendanceID, paymentItemID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM athlete_payment_items WHERE attendance_id = ? AND payment_item_id = ?",
		attendanceID, paymentItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete ledger row: %w", err)
	}
	return nil
}

// ListLedgerRows returns the rows of one attendance ordered by payment item.
func (s *SQLiteStore) ListLedgerRows(ctx context.Context, attendanceID string) ([]models.AthletePaymentItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT attendance_id, payment_item_id, confirmed_quantity, paid_quantity, paid, paid_at
		 FROM athlete_payment_items WHERE attendance_id = ? ORDER BY payment_item_id`,
		attendanceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	defer rows.Close()

	var items []models.AthletePaymentItem
	for rows.Next() {
		var row models.AthletePaymentItem
		if err := rows.Scan(&row.AttendanceID, &row.PaymentItemID, &row.ConfirmedQuantity,
			&row.PaidQuantity, &row.Paid, &row.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger rows: %w", err)
	}
	return items, nil
}

// ListAttendancesForEvent returns every attendance of an event ordered by creation.
// With includeLedger the rows come from the same LEFT JOIN, so the read stays a
// single query however many athletes attend.
func (s *SQLiteStore) ListAttendancesForEvent(ctx context.Context, eventID string, includeLedger bool) ([]models.Attendance, error) {
	if !includeLedger {
		return s.listAttendances(ctx, eventID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.event_id, a.athlete_id, a.confirmed, a.confirmed_at, a.created_at,
		        i.payment_item_id, i.confirmed_quantity, i.paid_quantity, i.paid, i.paid_at
		 FROM attendances a
		 LEFT JOIN athlete_payment_items i ON i.attendance_id = a.id
		 WHERE a.event_id = ?
		 ORDER BY a.created_at, a.id, i.payment_item_id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []models.Attendance
	for rows.Next() {
		var (
			att       models.Attendance
			itemID    sql.NullString
			confirmed sql.NullInt64
			paidQty   sql.NullInt64
			paid      sql.NullBool
			paidAt    sql.NullInt64
		)
		if err := rows.Scan(&att.ID, &att.EventID, &att.AthleteID, &att.Confirmed, &att.ConfirmedAt, &att.CreatedAt,
			&itemID, &confirmed, &paidQty, &paid, &paidAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}

		if n := len(attendances); n == 0 || attendances[n-1].ID != att.ID {
			att.Items = []models.AthletePaymentItem{}
			attendances = append(attendances, att)
		}
		if itemID.Valid {
			last := &attendances[len(attendances)-1]
			last.Items = append(last.Items, models.AthletePaymentItem{
				AttendanceID:      att.ID,
				PaymentItemID:     itemID.String,
				ConfirmedQuantity: int(confirmed.Int64),
				PaidQuantity:      int(paidQty.Int64),
				Paid:              paid.Bool,
				PaidAt:            paidAt.Int64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}

func (s *SQLiteStore) listAttendances(ctx context.Context, eventID string) ([]models.Attendance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, athlete_id, confirmed, confirmed_at, created_at
		 FROM attendances WHERE event_id = ? ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []models.Attendance
	for rows.Next() {
		var att models.Attendance
		if err := rows.Scan(&att.ID, &att.EventID, &att.AthleteID, &att.Confirmed, &att.ConfirmedAt, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}
