package models

// Organization is a tenant: a club or team that owns athletes and events.
type Organization struct {
	ID        string
	Name      string
	CreatedAt int64
}

// Athlete belongs to exactly one organization and optionally one category.
type Athlete struct {
	ID             string
	OrganizationID string
	CategoryID     string
	Name           string
	CreatedAt      int64
}

// Event is a dated activity an athlete can attend.
// Events run by a championship carry its ID.
type Event struct {
	ID             string
	OrganizationID string
	ChampionshipID string
	Name           string
	Date           int64
	CreatedAt      int64
}

// Championship groups organizations competing together.
type Championship struct {
	ID        string
	Name      string
	CreatedAt int64
}

// ChampionshipEntry registers one athlete of one organization into a championship.
type ChampionshipEntry struct {
	ChampionshipID   string
	OrganizationID   string
	OrganizationName string
	AthleteID        string
	Confirmed        bool
}
