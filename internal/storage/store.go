// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/clubledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations wrap it so callers can use errors.Is.
var ErrNotFound = errors.New("record not found")

// AttendanceStore persists attendances and their ledger rows.
// Upserts are keyed by the composite unique pairs (event, athlete) and
// (attendance, payment item).
type AttendanceStore interface {
	// FindAttendance returns the attendance for (eventID, athleteID), or nil if none exists.
	FindAttendance(ctx context.Context, eventID, athleteID string) (*models.Attendance, error)

	// UpsertAttendance creates the attendance if missing, otherwise updates its
	// confirmation fields. The returned record carries the persisted ID.
	UpsertAttendance(ctx context.Context, eventID, athleteID string, confirmed bool, confirmedAt int64) (*models.Attendance, error)

	// FindLedgerRow returns the row for (attendanceID, paymentItemID), or nil if none exists.
	FindLedgerRow(ctx context.Context, attendanceID, paymentItemID string) (*models.AthletePaymentItem, error)

	// UpsertLedgerRow creates or overwrites the row keyed by its attendance and payment item.
	UpsertLedgerRow(ctx context.Context, row models.AthletePaymentItem) error

	// DeleteLedgerRow removes a row. Deleting a missing row is not an error.
	DeleteLedgerRow(ctx context.Context, attendanceID, paymentItemID string) error

	// ListLedgerRows returns every row under an attendance.
	ListLedgerRows(ctx context.Context, attendanceID string) ([]models.AthletePaymentItem, error)

	// ListAttendancesForEvent returns all attendances of an event. With includeLedger,
	// each attendance carries its rows, loaded in the same query.
	ListAttendancesForEvent(ctx context.Context, eventID string, includeLedger bool) ([]models.Attendance, error)
}

// PaymentStore persists payment plans.
type PaymentStore interface {
	// CreatePayment persists a payment with its items, generating missing IDs.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment returns a payment with items ordered by position.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// GetPaymentForEvent returns the payment attached to an event, or nil if none.
	GetPaymentForEvent(ctx context.Context, eventID string) (*models.Payment, error)

	// GetPaymentForChampionship returns the payment attached to a championship, or nil if none.
	GetPaymentForChampionship(ctx context.Context, championshipID string) (*models.Payment, error)
}

// DirectoryStore persists the records the engine reads for scoping:
// organizations, athletes, events, championships and their entries.
type DirectoryStore interface {
	CreateOrganization(ctx context.Context, org *models.Organization) error
	GetOrganization(ctx context.Context, orgID string) (*models.Organization, error)

	CreateAthlete(ctx context.Context, athlete *models.Athlete) error
	GetAthlete(ctx context.Context, athleteID string) (*models.Athlete, error)

	// GetAthleteNames returns athlete names keyed by ID. Unknown IDs are omitted.
	GetAthleteNames(ctx context.Context, athleteIDs []string) (map[string]string, error)

	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	ListEventsByOrganization(ctx context.Context, orgID string) ([]models.Event, error)

	CreateChampionship(ctx context.Context, championship *models.Championship) error
	GetChampionship(ctx context.Context, championshipID string) (*models.Championship, error)

	// UpsertChampionshipEntry registers or updates an athlete's entry.
	UpsertChampionshipEntry(ctx context.Context, entry models.ChampionshipEntry) error

	// ListChampionshipEntries returns every entry of a championship with organization names.
	ListChampionshipEntries(ctx context.Context, championshipID string) ([]models.ChampionshipEntry, error)
}

// UserStore persists login accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the full persistence surface.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	AttendanceStore
	PaymentStore
	DirectoryStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
