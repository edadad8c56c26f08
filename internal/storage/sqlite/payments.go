package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/storage"
)

// CreatePayment persists a payment and its items in one transaction.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.EventID != "" && payment.ChampionshipID != "" {
		return fmt.Errorf("payment cannot belong to both event %s and championship %s",
			payment.EventID, payment.ChampionshipID)
	}
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, name, due_date, event_id, championship_id, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.Name, payment.DueDate, nullable(payment.EventID),
		nullable(payment.ChampionshipID), payment.CategoryID, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	for i := range payment.Items {
		item := &payment.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.PaymentID = payment.ID
		if item.Position == 0 {
			item.Position = i + 1
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO payment_items (id, payment_id, name, value, quantity_enabled, required, is_fixed, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, payment.ID, item.Name, item.Value.String(),
			item.QuantityEnabled, item.Required, item.IsFixed, item.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID with its items ordered by position.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	var eventID, championshipID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, due_date, event_id, championship_id, category_id, created_at
		 FROM payments WHERE id = ?`,
		paymentID,
	).Scan(&payment.ID, &payment.Name, &payment.DueDate, &eventID, &championshipID,
		&payment.CategoryID, &payment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	payment.EventID = eventID.String
	payment.ChampionshipID = championshipID.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payment_id, name, value, quantity_enabled, required, is_fixed, position
		 FROM payment_items WHERE payment_id = ? ORDER BY position, id`,
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PaymentItem
		if err := rows.Scan(&item.ID, &item.PaymentID, &item.Name, &item.Value,
			&item.QuantityEnabled, &item.Required, &item.IsFixed, &item.Position); err != nil {
			return nil, fmt.Errorf("failed to scan payment item: %w", err)
		}
		payment.Items = append(payment.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment items: %w", err)
	}

	return payment, nil
}

// GetPaymentForEvent returns the oldest payment attached to an event, or nil if none.
func (s *SQLiteStore) GetPaymentForEvent(ctx context.Context, eventID string) (*models.Payment, error) {
	return s.findPaymentBy(ctx, "event_id", eventID)
}

// GetPaymentForChampionship returns the oldest payment attached to a championship, or nil if none.
func (s *SQLiteStore) GetPaymentForChampionship(ctx context.Context, championshipID string) (*models.Payment, error) {
	return s.findPaymentBy(ctx, "championship_id", championshipID)
}

// findPaymentBy looks a payment up by one of its owner columns.
// column is always a constant from this file, never user input.
func (s *SQLiteStore) findPaymentBy(ctx context.Context, column, value string) (*models.Payment, error) {
	var paymentID string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM payments WHERE "+column+" = ? ORDER BY created_at, id LIMIT 1",
		value,
	).Scan(&paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment by %s: %w", column, err)
	}
	return s.GetPayment(ctx, paymentID)
}
