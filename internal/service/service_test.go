package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/metrics"
	"github.com/mmynk/clubledger/internal/middleware"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/storage/sqlite"
	"github.com/mmynk/clubledger/pkg/api"
	"github.com/mmynk/clubledger/pkg/api/apiconnect"
	"github.com/mmynk/clubledger/pkg/logging"
)

// fixture is a seeded store behind a test server.
type fixture struct {
	store      *sqlite.SQLiteStore
	jwt        *auth.JWTManager
	attendance apiconnect.AttendanceServiceClient
	analytics  apiconnect.AnalyticsServiceClient
	auth       apiconnect.AuthServiceClient

	lions, tigers *models.Organization
	event         *models.Event
	ana           *models.Athlete // lions, u12
	bruno         *models.Athlete // lions, u14
	carla         *models.Athlete // tigers
}

const (
	itemInscription = "inscription"
	itemCafe        = "cafe"
	itemFee         = "pool-fee"
)

func setupTestServer(t *testing.T) *fixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "clubledger-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	f := &fixture{store: store, jwt: auth.NewJWTManager("test-secret", time.Hour)}
	f.seed(t)

	logger := logging.Discard()
	m := metrics.New()
	required := connect.WithInterceptors(middleware.RequireAuth(f.jwt))
	optional := connect.WithInterceptors(middleware.OptionalAuth(f.jwt))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAttendanceServiceHandler(NewAttendanceService(store, m, logger), required))
	mux.Handle(apiconnect.NewAnalyticsServiceHandler(NewAnalyticsService(store, logger), required))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), store, f.jwt, logger), optional,
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	f.attendance = apiconnect.NewAttendanceServiceClient(http.DefaultClient, server.URL)
	f.analytics = apiconnect.NewAnalyticsServiceClient(http.DefaultClient, server.URL)
	f.auth = apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	return f
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	f.lions = &models.Organization{Name: "Lions"}
	f.tigers = &models.Organization{Name: "Tigers"}
	for _, org := range []*models.Organization{f.lions, f.tigers} {
		if err := f.store.CreateOrganization(ctx, org); err != nil {
			t.Fatalf("CreateOrganization failed: %v", err)
		}
	}

	f.ana = &models.Athlete{OrganizationID: f.lions.ID, CategoryID: "u12", Name: "Ana"}
	f.bruno = &models.Athlete{OrganizationID: f.lions.ID, CategoryID: "u14", Name: "Bruno"}
	f.carla = &models.Athlete{OrganizationID: f.tigers.ID, CategoryID: "u12", Name: "Carla"}
	for _, a := range []*models.Athlete{f.ana, f.bruno, f.carla} {
		if err := f.store.CreateAthlete(ctx, a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}
	}

	f.event = &models.Event{OrganizationID: f.lions.ID, Name: "Spring Meet", Date: 1773000000}
	if err := f.store.CreateEvent(ctx, f.event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	payment := &models.Payment{
		Name:    "Spring Meet fees",
		EventID: f.event.ID,
		Items: []models.PaymentItem{
			{ID: itemInscription, Name: "Inscription", Value: decimal.NewFromInt(50), Required: true},
			{ID: itemCafe, Name: "Café", Value: decimal.NewFromInt(10), QuantityEnabled: true},
			{ID: itemFee, Name: "Pool rental", Value: decimal.NewFromInt(100), IsFixed: true},
		},
	}
	if err := f.store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
}

func (f *fixture) token(t *testing.T, user *models.User) string {
	t.Helper()
	if user.ID == "" {
		user.ID = "user-" + user.Role + "-" + user.AthleteID + user.OrganizationID
	}
	token, err := f.jwt.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return token
}

func (f *fixture) adminToken(t *testing.T) string {
	return f.token(t, &models.User{Role: models.RoleAdmin})
}

func (f *fixture) managerToken(t *testing.T, categories ...string) string {
	return f.token(t, &models.User{Role: models.RoleManager, OrganizationID: f.lions.ID, CategoryIDs: categories})
}

func (f *fixture) athleteToken(t *testing.T, athlete *models.Athlete) string {
	return f.token(t, &models.User{Role: models.RoleAthlete, AthleteID: athlete.ID, OrganizationID: athlete.OrganizationID})
}

// withToken wraps msg in a request carrying the bearer token.
func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func (f *fixture) confirm(t *testing.T, token string, athlete *models.Athlete, q map[string]int32) (*api.Attendance, error) {
	t.Helper()
	resp, err := f.attendance.ConfirmAttendance(context.Background(), withToken(token, &api.ConfirmAttendanceRequest{
		EventID: f.event.ID, AthleteID: athlete.ID, Quantities: q,
	}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Attendance, nil
}

func (f *fixture) pay(t *testing.T, token string, athlete *models.Athlete, q map[string]int32) (*api.Attendance, error) {
	t.Helper()
	resp, err := f.attendance.RecordPayment(context.Background(), withToken(token, &api.RecordPaymentRequest{
		EventID: f.event.ID, AthleteID: athlete.ID, Quantities: q,
	}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Attendance, nil
}

func rowFor(att *api.Attendance, itemID string) *api.LedgerRow {
	for i := range att.Items {
		if att.Items[i].PaymentItemID == itemID {
			return &att.Items[i]
		}
	}
	return nil
}

func expectCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}
