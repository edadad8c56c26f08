// Package models defines the core domain models for clubledger.
//
// # Payment Models
//
// The reconciliation engine works on three records:
//   - Payment / PaymentItem: a payable definition and its line items
//   - Attendance: one athlete's relationship to one event
//   - AthletePaymentItem: the per-item ledger row under an attendance
//
// Confirmed and paid quantities on a ledger row are independent counters.
// A row whose counters disagree while either is non-zero is a discrepancy.
//
// # Directory Models
//
// Organization, Athlete, Event, Championship and ChampionshipEntry are plain
// records read by the engine for ownership checks and aggregation. They carry
// no reconciliation logic of their own.
//
// # Design Principles
//
// 1. **IDs over pointers**: relationships use ID strings (UUID format)
// 2. **Unix timestamps**: times are int64 seconds, zero meaning "not set"
// 3. **Exact money**: monetary values use decimal.Decimal, never float64
package models
