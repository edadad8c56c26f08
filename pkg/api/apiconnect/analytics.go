package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/pkg/api"
)

// AnalyticsServiceHandler is implemented by the analytics service.
type AnalyticsServiceHandler interface {
	GetEventSummary(context.Context, *connect.Request[api.GetEventSummaryRequest]) (*connect.Response[api.GetEventSummaryResponse], error)
	GetOrganizationSummary(context.Context, *connect.Request[api.GetOrganizationSummaryRequest]) (*connect.Response[api.GetOrganizationSummaryResponse], error)
	GetChampionshipSummary(context.Context, *connect.Request[api.GetChampionshipSummaryRequest]) (*connect.Response[api.GetChampionshipSummaryResponse], error)
}

// NewAnalyticsServiceHandler returns the path to mount the service on and its handler.
func NewAnalyticsServiceHandler(svc AnalyticsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	event := connect.NewUnaryHandler(AnalyticsServiceGetEventSummaryProcedure, svc.GetEventSummary, opts...)
	org := connect.NewUnaryHandler(AnalyticsServiceGetOrganizationSummaryProcedure, svc.GetOrganizationSummary, opts...)
	championship := connect.NewUnaryHandler(AnalyticsServiceGetChampionshipSummaryProcedure, svc.GetChampionshipSummary, opts...)

	return servicePath(AnalyticsServiceName), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AnalyticsServiceGetEventSummaryProcedure:
			event.ServeHTTP(w, r)
		case AnalyticsServiceGetOrganizationSummaryProcedure:
			org.ServeHTTP(w, r)
		case AnalyticsServiceGetChampionshipSummaryProcedure:
			championship.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AnalyticsServiceClient calls the analytics service.
type AnalyticsServiceClient interface {
	GetEventSummary(context.Context, *connect.Request[api.GetEventSummaryRequest]) (*connect.Response[api.GetEventSummaryResponse], error)
	GetOrganizationSummary(context.Context, *connect.Request[api.GetOrganizationSummaryRequest]) (*connect.Response[api.GetOrganizationSummaryResponse], error)
	GetChampionshipSummary(context.Context, *connect.Request[api.GetChampionshipSummaryRequest]) (*connect.Response[api.GetChampionshipSummaryResponse], error)
}

// NewAnalyticsServiceClient returns a client for the service at baseURL.
func NewAnalyticsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AnalyticsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &analyticsServiceClient{
		event:        connect.NewClient[api.GetEventSummaryRequest, api.GetEventSummaryResponse](httpClient, baseURL+AnalyticsServiceGetEventSummaryProcedure, opts...),
		org:          connect.NewClient[api.GetOrganizationSummaryRequest, api.GetOrganizationSummaryResponse](httpClient, baseURL+AnalyticsServiceGetOrganizationSummaryProcedure, opts...),
		championship: connect.NewClient[api.GetChampionshipSummaryRequest, api.GetChampionshipSummaryResponse](httpClient, baseURL+AnalyticsServiceGetChampionshipSummaryProcedure, opts...),
	}
}

type analyticsServiceClient struct {
	event        *connect.Client[api.GetEventSummaryRequest, api.GetEventSummaryResponse]
	org          *connect.Client[api.GetOrganizationSummaryRequest, api.GetOrganizationSummaryResponse]
	championship *connect.Client[api.GetChampionshipSummaryRequest, api.GetChampionshipSummaryResponse]
}

func (c *analyticsServiceClient) GetEventSummary(ctx context.Context, req *connect.Request[api.GetEventSummaryRequest]) (*connect.Response[api.GetEventSummaryResponse], error) {
	return c.event.CallUnary(ctx, req)
}

func (c *analyticsServiceClient) GetOrganizationSummary(ctx context.Context, req *connect.Request[api.GetOrganizationSummaryRequest]) (*connect.Response[api.GetOrganizationSummaryResponse], error) {
	return c.org.CallUnary(ctx, req)
}

func (c *analyticsServiceClient) GetChampionshipSummary(ctx context.Context, req *connect.Request[api.GetChampionshipSummaryRequest]) (*connect.Response[api.GetChampionshipSummaryResponse], error) {
	return c.championship.CallUnary(ctx, req)
}
