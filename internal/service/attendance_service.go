package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/metrics"
	"github.com/mmynk/clubledger/internal/middleware"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/reconcile"
	"github.com/mmynk/clubledger/internal/storage"
	"github.com/mmynk/clubledger/pkg/api"
)

// AttendanceInput identifies an athlete's attendance at an event and the
// item quantities requested for it.
type AttendanceInput struct {
	EventID    string
	AthleteID  string
	Quantities reconcile.Quantities
}

// AttendanceResult is the attendance after a confirm or pay, with its ledger rows.
type AttendanceResult struct {
	Attendance *models.Attendance
	Plan       []models.PaymentItem

	// Skipped counts request entries the engine ignored.
	Skipped int
}

// AttendanceService implements the AttendanceService RPC interface.
type AttendanceService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *AttendanceService {
	return &AttendanceService{
		store:   store,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// scope is what every attendance operation loads before touching the ledger.
type scope struct {
	event   *models.Event
	athlete *models.Athlete
	plan    []models.PaymentItem
}

// loadScope resolves the event, athlete and payment plan, and checks the
// session owns the athlete. A payment restricted to a category applies only
// to athletes of that category; others see an empty plan.
func (s *AttendanceService) loadScope(ctx context.Context, sess auth.Session, eventID, athleteID string) (*scope, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	athlete, err := s.store.GetAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if event.ChampionshipID == "" && athlete.OrganizationID != event.OrganizationID {
		return nil, fmt.Errorf("%w: athlete %s, event %s", ErrOutOfScope, athleteID, eventID)
	}
	if !sess.CanActForAthlete(athlete) {
		return nil, fmt.Errorf("%w: athlete %s", auth.ErrForbidden, athleteID)
	}

	payment, err := s.store.GetPaymentForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	sc := &scope{event: event, athlete: athlete}
	if payment != nil && (payment.CategoryID == "" || payment.CategoryID == athlete.CategoryID) {
		sc.plan = payment.Items
	}
	return sc, nil
}

func (s *AttendanceService) loadLedger(ctx context.Context, att *models.Attendance) (reconcile.Ledger, error) {
	if att == nil {
		return reconcile.NewLedger(nil), nil
	}
	rows, err := s.store.ListLedgerRows(ctx, att.ID)
	if err != nil {
		return nil, err
	}
	return reconcile.NewLedger(rows), nil
}

// apply writes a mutation row by row. Failed rows are logged and reported
// together; rows written before a failure stay written.
func (s *AttendanceService) apply(ctx context.Context, m reconcile.Mutation) error {
	var errs []error
	upserts, deletes := 0, 0
	for _, row := range m.Upserts {
		if err := s.store.UpsertLedgerRow(ctx, row); err != nil {
			s.logger.Error("Failed to upsert ledger row",
				"attendance_id", row.AttendanceID, "payment_item_id", row.PaymentItemID, "error", err)
			errs = append(errs, err)
			continue
		}
		upserts++
	}
	for _, itemID := range m.Deletes {
		if err := s.store.DeleteLedgerRow(ctx, m.AttendanceID, itemID); err != nil {
			s.logger.Error("Failed to delete ledger row",
				"attendance_id", m.AttendanceID, "payment_item_id", itemID, "error", err)
			errs = append(errs, err)
			continue
		}
		deletes++
	}
	s.metrics.LedgerWrites(upserts, deletes)
	return errors.Join(errs...)
}

func (s *AttendanceService) reload(ctx context.Context, att *models.Attendance) (*models.Attendance, error) {
	rows, err := s.store.ListLedgerRows(ctx, att.ID)
	if err != nil {
		return nil, err
	}
	att.Items = rows
	return att, nil
}

// Confirm records an athlete's attendance at an event and the quantities
// they intend to take. Requests missing a required item are rejected before
// anything is written.
func (s *AttendanceService) Confirm(ctx context.Context, sess auth.Session, in AttendanceInput) (*AttendanceResult, error) {
	sc, err := s.loadScope(ctx, sess, in.EventID, in.AthleteID)
	if err != nil {
		return nil, err
	}
	if err := reconcile.ValidateSelection(sc.plan, in.Quantities); err != nil {
		s.metrics.Confirmation("rejected")
		return nil, err
	}

	now := s.now()
	att, err := s.store.UpsertAttendance(ctx, in.EventID, in.AthleteID, true, now.Unix())
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, att)
	if err != nil {
		return nil, err
	}

	result := reconcile.Confirm(att.ID, sc.plan, ledger, in.Quantities, now)
	if err := s.apply(ctx, result.Mutation); err != nil {
		s.metrics.Confirmation("error")
		return nil, err
	}
	s.metrics.Confirmation("ok")
	s.metrics.Skipped("confirm", result.Skipped)

	att, err = s.reload(ctx, att)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attendance confirmed",
		"attendance_id", att.ID,
		"event_id", in.EventID,
		"athlete_id", in.AthleteID,
		"upserts", len(result.Upserts),
		"deletes", len(result.Deletes),
		"skipped", result.Skipped,
	)
	return &AttendanceResult{Attendance: att, Plan: sc.plan, Skipped: result.Skipped}, nil
}

// Pay records staff-verified payment of item quantities. An athlete who never
// confirmed gets a confirmed attendance as a side effect.
func (s *AttendanceService) Pay(ctx context.Context, sess auth.Session, in AttendanceInput) (*AttendanceResult, error) {
	if !sess.IsStaff() {
		return nil, fmt.Errorf("%w: only staff record payments", auth.ErrForbidden)
	}
	sc, err := s.loadScope(ctx, sess, in.EventID, in.AthleteID)
	if err != nil {
		return nil, err
	}

	att, err := s.store.FindAttendance(ctx, in.EventID, in.AthleteID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, att)
	if err != nil {
		return nil, err
	}

	attendanceID := ""
	if att != nil {
		attendanceID = att.ID
	}
	if err := reconcile.ValidateSelection(sc.plan, reconcile.SelectionWithLedger(attendanceID, ledger, in.Quantities)); err != nil {
		s.metrics.Payment("rejected")
		return nil, err
	}

	now := s.now()
	if att == nil {
		att, err = s.store.UpsertAttendance(ctx, in.EventID, in.AthleteID, true, now.Unix())
		if err != nil {
			return nil, err
		}
	}

	result := reconcile.Pay(att.ID, sc.plan, ledger, in.Quantities, now)
	if err := s.apply(ctx, result.Mutation); err != nil {
		s.metrics.Payment("error")
		return nil, err
	}
	s.metrics.Payment("ok")
	s.metrics.Skipped("pay", result.Skipped)

	att, err = s.reload(ctx, att)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		"attendance_id", att.ID,
		"event_id", in.EventID,
		"athlete_id", in.AthleteID,
		"rows", len(result.Upserts),
		"skipped", result.Skipped,
		"recorded_by", sess.UserID,
	)
	return &AttendanceResult{Attendance: att, Plan: sc.plan, Skipped: result.Skipped}, nil
}

// Get returns the athlete's attendance with its ledger, or nil if none exists.
func (s *AttendanceService) Get(ctx context.Context, sess auth.Session, eventID, athleteID string) (*AttendanceResult, error) {
	sc, err := s.loadScope(ctx, sess, eventID, athleteID)
	if err != nil {
		return nil, err
	}
	att, err := s.store.FindAttendance(ctx, eventID, athleteID)
	if err != nil {
		return nil, err
	}
	if att != nil {
		if att, err = s.reload(ctx, att); err != nil {
			return nil, err
		}
	}
	return &AttendanceResult{Attendance: att, Plan: sc.plan}, nil
}

func sessionFrom(ctx context.Context) (auth.Session, error) {
	sess, ok := middleware.GetSession(ctx)
	if !ok {
		return auth.Session{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return sess, nil
}

// ConfirmAttendance handles the ConfirmAttendance RPC.
func (s *AttendanceService) ConfirmAttendance(ctx context.Context, req *connect.Request[api.ConfirmAttendanceRequest]) (*connect.Response[api.ConfirmAttendanceResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.EventID == "" || req.Msg.AthleteID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("event_id and athlete_id are required"))
	}

	result, err := s.Confirm(ctx, sess, AttendanceInput{
		EventID:    req.Msg.EventID,
		AthleteID:  req.Msg.AthleteID,
		Quantities: toQuantities(req.Msg.Quantities),
	})
	if err != nil {
		s.logger.Warn("Confirm failed", "event_id", req.Msg.EventID, "athlete_id", req.Msg.AthleteID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ConfirmAttendanceResponse{
		Attendance: toAPIAttendance(result.Attendance, result.Plan),
		Skipped:    int32(result.Skipped),
	}), nil
}

// RecordPayment handles the RecordPayment RPC.
func (s *AttendanceService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.EventID == "" || req.Msg.AthleteID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("event_id and athlete_id are required"))
	}

	result, err := s.Pay(ctx, sess, AttendanceInput{
		EventID:    req.Msg.EventID,
		AthleteID:  req.Msg.AthleteID,
		Quantities: toQuantities(req.Msg.Quantities),
	})
	if err != nil {
		s.logger.Warn("Payment failed", "event_id", req.Msg.EventID, "athlete_id", req.Msg.AthleteID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordPaymentResponse{
		Attendance: toAPIAttendance(result.Attendance, result.Plan),
		Skipped:    int32(result.Skipped),
	}), nil
}

// GetAttendance handles the GetAttendance RPC.
func (s *AttendanceService) GetAttendance(ctx context.Context, req *connect.Request[api.GetAttendanceRequest]) (*connect.Response[api.GetAttendanceResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.Get(ctx, sess, req.Msg.EventID, req.Msg.AthleteID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetAttendanceResponse{
		Attendance: toAPIAttendance(result.Attendance, result.Plan),
	}), nil
}
