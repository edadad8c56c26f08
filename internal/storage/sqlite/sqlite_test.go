package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/storage"
)

// newTestStore opens a store in a temp directory removed when the test ends.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "clubledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedEvent creates an organization, an event and the given athletes.
func seedEvent(t *testing.T, store *SQLiteStore, athleteNames ...string) (*models.Event, []*models.Athlete) {
	t.Helper()
	ctx := context.Background()

	org := &models.Organization{Name: "Swim Club"}
	if err := store.CreateOrganization(ctx, org); err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}
	event := &models.Event{OrganizationID: org.ID, Name: "Spring Meet", Date: 1773000000}
	if err := store.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	var athletes []*models.Athlete
	for _, name := range athleteNames {
		athlete := &models.Athlete{OrganizationID: org.ID, Name: name}
		if err := store.CreateAthlete(ctx, athlete); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}
		athletes = append(athletes, athlete)
	}
	return event, athletes
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event, _ := seedEvent(t, store)

	t.Run("CreatePayment generates IDs and positions", func(t *testing.T) {
		payment := &models.Payment{
			Name:    "Meet fees",
			EventID: event.ID,
			Items: []models.PaymentItem{
				{Name: "Inscription", Value: decimal.RequireFromString("50.00"), Required: true},
				{Name: "Café", Value: decimal.RequireFromString("7.50"), QuantityEnabled: true},
			},
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if payment.ID == "" {
			t.Error("Expected payment ID to be generated")
		}
		for i, item := range payment.Items {
			if item.ID == "" {
				t.Errorf("Item %d: expected ID to be generated", i)
			}
			if item.Position != i+1 {
				t.Errorf("Item %d: position = %d, want %d", i, item.Position, i+1)
			}
		}
	})

	t.Run("GetPaymentForEvent returns items in order with exact values", func(t *testing.T) {
		payment, err := store.GetPaymentForEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetPaymentForEvent failed: %v", err)
		}
		if payment == nil {
			t.Fatal("Expected payment for event")
		}
		if len(payment.Items) != 2 {
			t.Fatalf("Items count = %d, want 2", len(payment.Items))
		}
		if payment.Items[0].Name != "Inscription" || !payment.Items[0].Required {
			t.Errorf("Unexpected first item: %+v", payment.Items[0])
		}
		if !payment.Items[1].Value.Equal(decimal.RequireFromString("7.5")) {
			t.Errorf("Café value = %s, want 7.5", payment.Items[1].Value)
		}
		if !payment.Items[1].QuantityEnabled {
			t.Error("Expected café to be quantity-enabled")
		}
	})

	t.Run("GetPaymentForEvent returns nil when none", func(t *testing.T) {
		payment, err := store.GetPaymentForEvent(ctx, "no-such-event")
		if err != nil {
			t.Fatalf("GetPaymentForEvent failed: %v", err)
		}
		if payment != nil {
			t.Errorf("Expected nil payment, got %+v", payment)
		}
	})

	t.Run("GetPayment returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetPayment(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreatePayment rejects double ownership", func(t *testing.T) {
		err := store.CreatePayment(ctx, &models.Payment{Name: "Bad", EventID: event.ID, ChampionshipID: "ch"})
		if err == nil {
			t.Error("Expected error for payment with event and championship")
		}
	})
}

func TestAttendanceLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event, athletes := seedEvent(t, store, "Ana", "Bruno")

	payment := &models.Payment{
		Name:    "Meet fees",
		EventID: event.ID,
		Items: []models.PaymentItem{
			{Name: "Inscription", Value: decimal.NewFromInt(50), Required: true},
			{Name: "Café", Value: decimal.NewFromInt(10), QuantityEnabled: true},
		},
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	inscription, cafe := payment.Items[0].ID, payment.Items[1].ID

	var ana *models.Attendance

	t.Run("FindAttendance returns nil before first upsert", func(t *testing.T) {
		att, err := store.FindAttendance(ctx, event.ID, athletes[0].ID)
		if err != nil {
			t.Fatalf("FindAttendance failed: %v", err)
		}
		if att != nil {
			t.Errorf("Expected nil attendance, got %+v", att)
		}
	})

	t.Run("UpsertAttendance creates then updates the same record", func(t *testing.T) {
		first, err := store.UpsertAttendance(ctx, event.ID, athletes[0].ID, false, 0)
		if err != nil {
			t.Fatalf("UpsertAttendance failed: %v", err)
		}
		second, err := store.UpsertAttendance(ctx, event.ID, athletes[0].ID, true, 1773000100)
		if err != nil {
			t.Fatalf("UpsertAttendance failed: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("Attendance ID changed: %s -> %s", first.ID, second.ID)
		}
		if !second.Confirmed || second.ConfirmedAt != 1773000100 {
			t.Errorf("Unexpected attendance after update: %+v", second)
		}
		ana = second
	})

	t.Run("UpsertLedgerRow overwrites by composite key", func(t *testing.T) {
		row := models.AthletePaymentItem{AttendanceID: ana.ID, PaymentItemID: cafe, ConfirmedQuantity: 2}
		if err := store.UpsertLedgerRow(ctx, row); err != nil {
			t.Fatalf("UpsertLedgerRow failed: %v", err)
		}
		row.PaidQuantity, row.Paid, row.PaidAt = 3, true, 1773000200
		if err := store.UpsertLedgerRow(ctx, row); err != nil {
			t.Fatalf("UpsertLedgerRow failed: %v", err)
		}

		got, err := store.FindLedgerRow(ctx, ana.ID, cafe)
		if err != nil {
			t.Fatalf("FindLedgerRow failed: %v", err)
		}
		if got == nil || *got != row {
			t.Errorf("FindLedgerRow = %+v, want %+v", got, row)
		}
	})

	t.Run("DeleteLedgerRow removes the row and tolerates missing rows", func(t *testing.T) {
		row := models.AthletePaymentItem{AttendanceID: ana.ID, PaymentItemID: inscription, ConfirmedQuantity: 1}
		if err := store.UpsertLedgerRow(ctx, row); err != nil {
			t.Fatalf("UpsertLedgerRow failed: %v", err)
		}
		if err := store.DeleteLedgerRow(ctx, ana.ID, inscription); err != nil {
			t.Fatalf("DeleteLedgerRow failed: %v", err)
		}
		if err := store.DeleteLedgerRow(ctx, ana.ID, inscription); err != nil {
			t.Fatalf("DeleteLedgerRow on missing row failed: %v", err)
		}
		got, _ := store.FindLedgerRow(ctx, ana.ID, inscription)
		if got != nil {
			t.Errorf("Expected row to be deleted, got %+v", got)
		}
	})

	t.Run("ListAttendancesForEvent folds rows per attendance", func(t *testing.T) {
		if _, err := store.UpsertAttendance(ctx, event.ID, athletes[1].ID, true, 1773000300); err != nil {
			t.Fatalf("UpsertAttendance failed: %v", err)
		}

		attendances, err := store.ListAttendancesForEvent(ctx, event.ID, true)
		if err != nil {
			t.Fatalf("ListAttendancesForEvent failed: %v", err)
		}
		if len(attendances) != 2 {
			t.Fatalf("Attendances = %d, want 2", len(attendances))
		}

		byAthlete := make(map[string]models.Attendance)
		for _, a := range attendances {
			byAthlete[a.AthleteID] = a
		}
		if n := len(byAthlete[athletes[0].ID].Items); n != 1 {
			t.Errorf("Ana rows = %d, want 1", n)
		}
		if n := len(byAthlete[athletes[1].ID].Items); n != 0 {
			t.Errorf("Bruno rows = %d, want 0", n)
		}

		flat, err := store.ListAttendancesForEvent(ctx, event.ID, false)
		if err != nil {
			t.Fatalf("ListAttendancesForEvent without ledger failed: %v", err)
		}
		if len(flat) != 2 || flat[0].Items != nil {
			t.Errorf("Expected 2 attendances without rows, got %+v", flat)
		}
	})

	t.Run("GetAthleteNames omits unknown IDs", func(t *testing.T) {
		names, err := store.GetAthleteNames(ctx, []string{athletes[0].ID, "ghost"})
		if err != nil {
			t.Fatalf("GetAthleteNames failed: %v", err)
		}
		if len(names) != 1 || names[athletes[0].ID] != "Ana" {
			t.Errorf("Unexpected names: %v", names)
		}
	})
}

func TestChampionshipEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	championship := &models.Championship{Name: "State Finals"}
	if err := store.CreateChampionship(ctx, championship); err != nil {
		t.Fatalf("CreateChampionship failed: %v", err)
	}

	orgA := &models.Organization{Name: "Eagles"}
	orgB := &models.Organization{Name: "Tigers"}
	for _, org := range []*models.Organization{orgA, orgB} {
		if err := store.CreateOrganization(ctx, org); err != nil {
			t.Fatalf("CreateOrganization failed: %v", err)
		}
	}

	for i, orgID := range []string{orgA.ID, orgA.ID, orgB.ID} {
		athlete := &models.Athlete{OrganizationID: orgID, Name: string(rune('A' + i))}
		if err := store.CreateAthlete(ctx, athlete); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}
		entry := models.ChampionshipEntry{ChampionshipID: championship.ID, OrganizationID: orgID, AthleteID: athlete.ID}
		if err := store.UpsertChampionshipEntry(ctx, entry); err != nil {
			t.Fatalf("UpsertChampionshipEntry failed: %v", err)
		}
		entry.Confirmed = true
		if err := store.UpsertChampionshipEntry(ctx, entry); err != nil {
			t.Fatalf("UpsertChampionshipEntry update failed: %v", err)
		}
	}

	entries, err := store.ListChampionshipEntries(ctx, championship.ID)
	if err != nil {
		t.Fatalf("ListChampionshipEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Entries = %d, want 3", len(entries))
	}
	if entries[0].OrganizationName != "Eagles" || entries[2].OrganizationName != "Tigers" {
		t.Errorf("Entries not ordered by organization name: %+v", entries)
	}
	for _, e := range entries {
		if !e.Confirmed {
			t.Errorf("Entry %s not confirmed after upsert", e.AthleteID)
		}
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("coach@example.com", "Coach", "hash", models.RoleManager)
	user.OrganizationID = "org-1"
	user.CategoryIDs = []string{"u12", "u14"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "coach@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got == nil || got.ID != user.ID || got.Role != models.RoleManager {
		t.Fatalf("Unexpected user: %+v", got)
	}
	if len(got.CategoryIDs) != 2 || got.CategoryIDs[1] != "u14" {
		t.Errorf("CategoryIDs = %v, want [u12 u14]", got.CategoryIDs)
	}

	missing, err := store.GetUserByID(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing user, got %+v", missing)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
