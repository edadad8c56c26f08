package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/internal/aggregate"
	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/storage"
	"github.com/mmynk/clubledger/pkg/api"
)

// AnalyticsService implements the AnalyticsService RPC interface.
// Summaries are computed on every call from one batched read per event.
type AnalyticsService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(store storage.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

func (s *AnalyticsService) summarize(ctx context.Context, event *models.Event) (aggregate.EventSummary, error) {
	var plan []models.PaymentItem
	payment, err := s.store.GetPaymentForEvent(ctx, event.ID)
	if err != nil {
		return aggregate.EventSummary{}, err
	}
	if payment != nil {
		plan = payment.Items
	}

	attendances, err := s.store.ListAttendancesForEvent(ctx, event.ID, true)
	if err != nil {
		return aggregate.EventSummary{}, err
	}

	ids := make([]string, len(attendances))
	for i, att := range attendances {
		ids[i] = att.AthleteID
	}
	names, err := s.store.GetAthleteNames(ctx, ids)
	if err != nil {
		return aggregate.EventSummary{}, err
	}

	return aggregate.SummarizeEvent(*event, plan, attendances, names), nil
}

// EventSummary returns the totals and per-athlete breakdown of an event.
func (s *AnalyticsService) EventSummary(ctx context.Context, sess auth.Session, eventID string) (aggregate.EventSummary, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return aggregate.EventSummary{}, err
	}
	if !sess.CanManageOrganization(event.OrganizationID) {
		return aggregate.EventSummary{}, fmt.Errorf("%w: event %s", auth.ErrForbidden, eventID)
	}
	return s.summarize(ctx, event)
}

// OrganizationSummary rolls up every event of an organization.
func (s *AnalyticsService) OrganizationSummary(ctx context.Context, sess auth.Session, orgID string) (aggregate.OrganizationSummary, error) {
	if !sess.CanManageOrganization(orgID) {
		return aggregate.OrganizationSummary{}, fmt.Errorf("%w: organization %s", auth.ErrForbidden, orgID)
	}
	if _, err := s.store.GetOrganization(ctx, orgID); err != nil {
		return aggregate.OrganizationSummary{}, err
	}

	events, err := s.store.ListEventsByOrganization(ctx, orgID)
	if err != nil {
		return aggregate.OrganizationSummary{}, err
	}

	summaries := make([]aggregate.EventSummary, 0, len(events))
	for i := range events {
		summary, err := s.summarize(ctx, &events[i])
		if err != nil {
			return aggregate.OrganizationSummary{}, err
		}
		summaries = append(summaries, summary)
	}
	return aggregate.SummarizeOrganization(orgID, summaries), nil
}

// ChampionshipSummary computes the expected cost per participating organization.
// Managers may read it only when their organization has entries.
func (s *AnalyticsService) ChampionshipSummary(ctx context.Context, sess auth.Session, championshipID string) (aggregate.ChampionshipSummary, error) {
	if !sess.IsStaff() {
		return aggregate.ChampionshipSummary{}, fmt.Errorf("%w: championship %s", auth.ErrForbidden, championshipID)
	}
	if _, err := s.store.GetChampionship(ctx, championshipID); err != nil {
		return aggregate.ChampionshipSummary{}, err
	}

	entries, err := s.store.ListChampionshipEntries(ctx, championshipID)
	if err != nil {
		return aggregate.ChampionshipSummary{}, err
	}
	orgs := aggregate.CountConfirmedByOrganization(entries)

	if sess.Role != models.RoleAdmin && !participates(orgs, sess.OrganizationID) {
		return aggregate.ChampionshipSummary{}, fmt.Errorf("%w: championship %s", auth.ErrForbidden, championshipID)
	}

	var plan []models.PaymentItem
	payment, err := s.store.GetPaymentForChampionship(ctx, championshipID)
	if err != nil {
		return aggregate.ChampionshipSummary{}, err
	}
	if payment != nil {
		plan = payment.Items
	}

	return aggregate.SummarizeChampionship(championshipID, plan, orgs), nil
}

func participates(orgs []aggregate.OrganizationEntries, orgID string) bool {
	for _, org := range orgs {
		if org.OrganizationID == orgID {
			return true
		}
	}
	return false
}

// GetEventSummary handles the GetEventSummary RPC.
func (s *AnalyticsService) GetEventSummary(ctx context.Context, req *connect.Request[api.GetEventSummaryRequest]) (*connect.Response[api.GetEventSummaryResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.EventSummary(ctx, sess, req.Msg.EventID)
	if err != nil {
		s.logger.Warn("Event summary failed", "event_id", req.Msg.EventID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Debug("Event summary computed",
		"event_id", summary.EventID,
		"athletes", len(summary.Athletes),
		"discrepancies", summary.Discrepancies,
	)
	return connect.NewResponse(&api.GetEventSummaryResponse{Summary: toAPIEventSummary(summary)}), nil
}

// GetOrganizationSummary handles the GetOrganizationSummary RPC.
func (s *AnalyticsService) GetOrganizationSummary(ctx context.Context, req *connect.Request[api.GetOrganizationSummaryRequest]) (*connect.Response[api.GetOrganizationSummaryResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.OrganizationSummary(ctx, sess, req.Msg.OrganizationID)
	if err != nil {
		s.logger.Warn("Organization summary failed", "organization_id", req.Msg.OrganizationID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetOrganizationSummaryResponse{Summary: toAPIOrganizationSummary(summary)}), nil
}

// GetChampionshipSummary handles the GetChampionshipSummary RPC.
func (s *AnalyticsService) GetChampionshipSummary(ctx context.Context, req *connect.Request[api.GetChampionshipSummaryRequest]) (*connect.Response[api.GetChampionshipSummaryResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.ChampionshipSummary(ctx, sess, req.Msg.ChampionshipID)
	if err != nil {
		s.logger.Warn("Championship summary failed", "championship_id", req.Msg.ChampionshipID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetChampionshipSummaryResponse{Summary: toAPIChampionshipSummary(summary)}), nil
}
