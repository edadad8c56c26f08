package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/metrics"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/reconcile"
	"github.com/mmynk/clubledger/internal/service"
	"github.com/mmynk/clubledger/internal/storage"
)

// Fixtures is the YAML document loaded by the seed command.
// Dates are YYYY-MM-DD; amounts are decimal strings.
type Fixtures struct {
	Organizations []OrganizationFixture `yaml:"organizations"`
	Athletes      []AthleteFixture      `yaml:"athletes"`
	Championships []ChampionshipFixture `yaml:"championships"`
	Events        []EventFixture        `yaml:"events"`
	Payments      []PaymentFixture      `yaml:"payments"`
	Users         []UserFixture         `yaml:"users"`

	// Activity is replayed through the attendance service as an admin.
	Activity []ActivityFixture `yaml:"activity"`
}

type OrganizationFixture struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type AthleteFixture struct {
	ID           string `yaml:"id"`
	Organization string `yaml:"organization"`
	Category     string `yaml:"category"`
	Name         string `yaml:"name"`
}

type ChampionshipFixture struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Entries []EntryFixture `yaml:"entries"`
}

type EntryFixture struct {
	Athlete   string `yaml:"athlete"`
	Confirmed bool   `yaml:"confirmed"`
}

type EventFixture struct {
	ID           string `yaml:"id"`
	Organization string `yaml:"organization"`
	Championship string `yaml:"championship"`
	Name         string `yaml:"name"`
	Date         string `yaml:"date"`
}

type PaymentFixture struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Event        string        `yaml:"event"`
	Championship string        `yaml:"championship"`
	Category     string        `yaml:"category"`
	Due          string        `yaml:"due"`
	Items        []ItemFixture `yaml:"items"`
}

type ItemFixture struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Value           string `yaml:"value"`
	QuantityEnabled bool   `yaml:"quantity_enabled"`
	Required        bool   `yaml:"required"`
	Fixed           bool   `yaml:"fixed"`
}

type UserFixture struct {
	Email        string   `yaml:"email"`
	Name         string   `yaml:"name"`
	Password     string   `yaml:"password"`
	Role         string   `yaml:"role"`
	Organization string   `yaml:"organization"`
	Athlete      string   `yaml:"athlete"`
	Categories   []string `yaml:"categories"`
}

type ActivityFixture struct {
	Action  string         `yaml:"action"` // confirm | pay
	Event   string         `yaml:"event"`
	Athlete string         `yaml:"athlete"`
	Items   map[string]int `yaml:"items"`
}

// LoadFixtures reads and parses a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return &f, nil
}

func parseDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Unix(), nil
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load organizations, athletes, events, payments and users from YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := LoadFixtures(file)
			if err != nil {
				return err
			}
			store, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			seeder := &Seeder{Store: store, Opts: rootOpts}
			if err := seeder.Apply(cmd.Context(), fixtures); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d organizations, %d athletes, %d events, %d payments, %d users\n",
				len(fixtures.Organizations), len(fixtures.Athletes), len(fixtures.Events), len(fixtures.Payments), len(fixtures.Users))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixtures YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// Seeder writes fixtures into a store in dependency order.
type Seeder struct {
	Store storage.Store
	Opts  *RootOptions
}

// Apply writes every fixture, stopping at the first error.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) error {
	for _, o := range f.Organizations {
		if err := s.Store.CreateOrganization(ctx, &models.Organization{ID: o.ID, Name: o.Name}); err != nil {
			return err
		}
	}
	for _, a := range f.Athletes {
		athlete := &models.Athlete{ID: a.ID, OrganizationID: a.Organization, CategoryID: a.Category, Name: a.Name}
		if err := s.Store.CreateAthlete(ctx, athlete); err != nil {
			return err
		}
	}
	if err := s.championships(ctx, f.Championships); err != nil {
		return err
	}
	for _, e := range f.Events {
		date, err := parseDate(e.Date)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		event := &models.Event{ID: e.ID, OrganizationID: e.Organization, ChampionshipID: e.Championship, Name: e.Name, Date: date}
		if err := s.Store.CreateEvent(ctx, event); err != nil {
			return err
		}
	}
	if err := s.payments(ctx, f.Payments); err != nil {
		return err
	}
	if err := s.users(ctx, f.Users); err != nil {
		return err
	}
	return s.activity(ctx, f.Activity)
}

func (s *Seeder) championships(ctx context.Context, fixtures []ChampionshipFixture) error {
	for _, c := range fixtures {
		if err := s.Store.CreateChampionship(ctx, &models.Championship{ID: c.ID, Name: c.Name}); err != nil {
			return err
		}
		for _, e := range c.Entries {
			athlete, err := s.Store.GetAthlete(ctx, e.Athlete)
			if err != nil {
				return fmt.Errorf("championship %s entry: %w", c.ID, err)
			}
			entry := models.ChampionshipEntry{
				ChampionshipID: c.ID,
				OrganizationID: athlete.OrganizationID,
				AthleteID:      athlete.ID,
				Confirmed:      e.Confirmed,
			}
			if err := s.Store.UpsertChampionshipEntry(ctx, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) payments(ctx context.Context, fixtures []PaymentFixture) error {
	for _, p := range fixtures {
		due, err := parseDate(p.Due)
		if err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
		payment := &models.Payment{
			ID:             p.ID,
			Name:           p.Name,
			DueDate:        due,
			EventID:        p.Event,
			ChampionshipID: p.Championship,
			CategoryID:     p.Category,
		}
		for i, it := range p.Items {
			value, err := decimal.NewFromString(it.Value)
			if err != nil {
				return fmt.Errorf("payment %s item %s: invalid value %q: %w", p.ID, it.Name, it.Value, err)
			}
			payment.Items = append(payment.Items, models.PaymentItem{
				ID:              it.ID,
				Name:            it.Name,
				Value:           value,
				QuantityEnabled: it.QuantityEnabled,
				Required:        it.Required,
				IsFixed:         it.Fixed,
				Position:        i,
			})
		}
		if err := s.Store.CreatePayment(ctx, payment); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) users(ctx context.Context, fixtures []UserFixture) error {
	authn := auth.NewPasswordAuthenticator(s.Store)
	for _, u := range fixtures {
		_, err := authn.Register(ctx, auth.Registration{
			Email:          u.Email,
			DisplayName:    u.Name,
			Credential:     u.Password,
			Role:           u.Role,
			OrganizationID: u.Organization,
			AthleteID:      u.Athlete,
			CategoryIDs:    u.Categories,
		})
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	return nil
}

func (s *Seeder) activity(ctx context.Context, fixtures []ActivityFixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	svc := service.NewAttendanceService(s.Store, metrics.New(), s.Opts.Logger)
	admin := auth.Session{UserID: "seed", Role: models.RoleAdmin}

	for i, a := range fixtures {
		in := service.AttendanceInput{EventID: a.Event, AthleteID: a.Athlete, Quantities: reconcile.Quantities(a.Items)}
		var err error
		switch a.Action {
		case "confirm":
			_, err = svc.Confirm(ctx, admin, in)
		case "pay":
			_, err = svc.Pay(ctx, admin, in)
		default:
			err = fmt.Errorf("unknown action %q", a.Action)
		}
		if err != nil {
			return fmt.Errorf("activity %d (%s %s): %w", i, a.Action, a.Athlete, err)
		}
	}
	return nil
}
