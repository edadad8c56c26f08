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

// CreateOrganization persists a new organization.
func (s *SQLiteStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if org.CreatedAt == 0 {
		org.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO organizations (id, name, created_at) VALUES (?, ?, ?)",
		org.ID, org.Name, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

// GetOrganization retrieves an organization by ID.
func (s *SQLiteStore) GetOrganization(ctx context.Context, orgID string) (*models.Organization, error) {
	org := &models.Organization{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM organizations WHERE id = ?",
		orgID,
	).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization %s: %w", orgID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// CreateAthlete persists a new athlete.
func (s *SQLiteStore) CreateAthlete(ctx context.Context, athlete *models.Athlete) error {
	if athlete.ID == "" {
		athlete.ID = uuid.New().String()
	}
	if athlete.CreatedAt == 0 {
		athlete.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO athletes (id, organization_id, category_id, name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		athlete.ID, athlete.OrganizationID, athlete.CategoryID, athlete.Name, athlete.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert athlete: %w", err)
	}
	return nil
}

// GetAthlete retrieves an athlete by ID.
func (s *SQLiteStore) GetAthlete(ctx context.Context, athleteID string) (*models.Athlete, error) {
	athlete := &models.Athlete{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, organization_id, category_id, name, created_at FROM athletes WHERE id = ?",
		athleteID,
	).Scan(&athlete.ID, &athlete.OrganizationID, &athlete.CategoryID, &athlete.Name, &athlete.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("athlete %s: %w", athleteID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	return athlete, nil
}

// GetAthleteNames returns athlete names keyed by ID. IDs that don't exist are omitted.
func (s *SQLiteStore) GetAthleteNames(ctx context.Context, athleteIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(athleteIDs))
	if len(athleteIDs) == 0 {
		return names, nil
	}

	args := make([]interface{}, len(athleteIDs))
	for i, id := range athleteIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM athletes WHERE id IN ("+placeholders(len(athleteIDs))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan athlete name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate athlete names: %w", err)
	}
	return names, nil
}

// CreateEvent persists a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, organization_id, championship_id, name, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.OrganizationID, nullable(event.ChampionshipID), event.Name, event.Date, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	var championshipID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, organization_id, championship_id, name, date, created_at FROM events WHERE id = ?",
		eventID,
	).Scan(&event.ID, &event.OrganizationID, &championshipID, &event.Name, &event.Date, &event.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	event.ChampionshipID = championshipID.String
	return event, nil
}

// ListEventsByOrganization returns an organization's events ordered by date.
func (s *SQLiteStore) ListEventsByOrganization(ctx context.Context, orgID string) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, organization_id, championship_id, name, date, created_at
		 FROM events WHERE organization_id = ? ORDER BY date, id`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var championshipID sql.NullString
		if err := rows.Scan(&event.ID, &event.OrganizationID, &championshipID,
			&event.Name, &event.Date, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.ChampionshipID = championshipID.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// CreateChampionship persists a new championship.
func (s *SQLiteStore) CreateChampionship(ctx context.Context, championship *models.Championship) error {
	if championship.ID == "" {
		championship.ID = uuid.New().String()
	}
	if championship.CreatedAt == 0 {
		championship.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO championships (id, name, created_at) VALUES (?, ?, ?)",
		championship.ID, championship.Name, championship.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert championship: %w", err)
	}
	return nil
}

// GetChampionship retrieves a championship by ID.
func (s *SQLiteStore) GetChampionship(ctx context.Context, championshipID string) (*models.Championship, error) {
	championship := &models.Championship{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM championships WHERE id = ?",
		championshipID,
	).Scan(&championship.ID, &championship.Name, &championship.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("championship %s: %w", championshipID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get championship: %w", err)
	}
	return championship, nil
}

// UpsertChampionshipEntry registers an athlete in a championship, or updates the entry.
func (s *SQLiteStore) UpsertChampionshipEntry(ctx context.Context, entry models.ChampionshipEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO championship_entries (championship_id, organization_id, athlete_id, confirmed)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (championship_id, athlete_id) DO UPDATE SET
		     organization_id = excluded.organization_id,
		     confirmed = excluded.confirmed`,
		entry.ChampionshipID, entry.OrganizationID, entry.AthleteID, entry.Confirmed,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert championship entry: %w", err)
	}
	return nil
}

// ListChampionshipEntries returns every entry of a championship joined with organization names.
func (s *SQLiteStore) ListChampionshipEntries(ctx context.Context, championshipID string) ([]models.ChampionshipEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.championship_id, e.organization_id, o.name, e.athlete_id, e.confirmed
		 FROM championship_entries e
		 JOIN organizations o ON o.id = e.organization_id
		 WHERE e.championship_id = ?
		 ORDER BY o.name, e.athlete_id`,
		championshipID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list championship entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ChampionshipEntry
	for rows.Next() {
		var entry models.ChampionshipEntry
		if err := rows.Scan(&entry.ChampionshipID, &entry.OrganizationID, &entry.OrganizationName,
			&entry.AthleteID, &entry.Confirmed); err != nil {
			return nil, fmt.Errorf("failed to scan championship entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate championship entries: %w", err)
	}
	return entries, nil
}
