// Package apiconnect binds the clubledger services to Connect: procedure names,
// HTTP handlers and typed clients. Every handler and client uses api.Codec.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/pkg/api"
)

const (
	AttendanceServiceName = "clubledger.v1.AttendanceService"
	AnalyticsServiceName  = "clubledger.v1.AnalyticsService"
	AuthServiceName       = "clubledger.v1.AuthService"
)

const (
	AttendanceServiceConfirmAttendanceProcedure = "/clubledger.v1.AttendanceService/ConfirmAttendance"
	AttendanceServiceRecordPaymentProcedure     = "/clubledger.v1.AttendanceService/RecordPayment"
	AttendanceServiceGetAttendanceProcedure     = "/clubledger.v1.AttendanceService/GetAttendance"

	AnalyticsServiceGetEventSummaryProcedure        = "/clubledger.v1.AnalyticsService/GetEventSummary"
	AnalyticsServiceGetOrganizationSummaryProcedure = "/clubledger.v1.AnalyticsService/GetOrganizationSummary"
	AnalyticsServiceGetChampionshipSummaryProcedure = "/clubledger.v1.AnalyticsService/GetChampionshipSummary"

	AuthServiceRegisterProcedure       = "/clubledger.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/clubledger.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/clubledger.v1.AuthService/GetCurrentUser"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

func servicePath(name string) string {
	return "/" + name + "/"
}
