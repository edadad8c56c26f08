package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/pkg/api"
)

// AttendanceServiceHandler is implemented by the attendance service.
type AttendanceServiceHandler interface {
	ConfirmAttendance(context.Context, *connect.Request[api.ConfirmAttendanceRequest]) (*connect.Response[api.ConfirmAttendanceResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetAttendance(context.Context, *connect.Request[api.GetAttendanceRequest]) (*connect.Response[api.GetAttendanceResponse], error)
}

// NewAttendanceServiceHandler returns the path to mount the service on and its handler.
func NewAttendanceServiceHandler(svc AttendanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	confirm := connect.NewUnaryHandler(AttendanceServiceConfirmAttendanceProcedure, svc.ConfirmAttendance, opts...)
	pay := connect.NewUnaryHandler(AttendanceServiceRecordPaymentProcedure, svc.RecordPayment, opts...)
	get := connect.NewUnaryHandler(AttendanceServiceGetAttendanceProcedure, svc.GetAttendance, opts...)

	return servicePath(AttendanceServiceName), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AttendanceServiceConfirmAttendanceProcedure:
			confirm.ServeHTTP(w, r)
		case AttendanceServiceRecordPaymentProcedure:
			pay.ServeHTTP(w, r)
		case AttendanceServiceGetAttendanceProcedure:
			get.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AttendanceServiceClient calls the attendance service.
type AttendanceServiceClient interface {
	ConfirmAttendance(context.Context, *connect.Request[api.ConfirmAttendanceRequest]) (*connect.Response[api.ConfirmAttendanceResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetAttendance(context.Context, *connect.Request[api.GetAttendanceRequest]) (*connect.Response[api.GetAttendanceResponse], error)
}

// NewAttendanceServiceClient returns a client for the service at baseURL.
func NewAttendanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AttendanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &attendanceServiceClient{
		confirm: connect.NewClient[api.ConfirmAttendanceRequest, api.ConfirmAttendanceResponse](httpClient, baseURL+AttendanceServiceConfirmAttendanceProcedure, opts...),
		pay:     connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+AttendanceServiceRecordPaymentProcedure, opts...),
		get:     connect.NewClient[api.GetAttendanceRequest, api.GetAttendanceResponse](httpClient, baseURL+AttendanceServiceGetAttendanceProcedure, opts...),
	}
}

type attendanceServiceClient struct {
	confirm *connect.Client[api.ConfirmAttendanceRequest, api.ConfirmAttendanceResponse]
	pay     *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	get     *connect.Client[api.GetAttendanceRequest, api.GetAttendanceResponse]
}

func (c *attendanceServiceClient) ConfirmAttendance(ctx context.Context, req *connect.Request[api.ConfirmAttendanceRequest]) (*connect.Response[api.ConfirmAttendanceResponse], error) {
	return c.confirm.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.pay.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) GetAttendance(ctx context.Context, req *connect.Request[api.GetAttendanceRequest]) (*connect.Response[api.GetAttendanceResponse], error) {
	return c.get.CallUnary(ctx, req)
}
