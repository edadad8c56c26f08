// Package report renders aggregation summaries for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/clubledger/internal/aggregate"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Renderer writes summaries in one format, formatting amounts for one locale.
type Renderer struct {
	format  Format
	printer *message.Printer
}

// New returns a renderer. lang is a BCP 47 tag such as "en" or "pt-BR".
func New(format Format, lang string) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return &Renderer{format: format, printer: message.NewPrinter(tag)}, nil
}

func (r *Renderer) money(d decimal.Decimal) string {
	return r.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func (r *Renderer) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mark(flag bool) string {
	if flag {
		return " !"
	}
	return ""
}

// Event writes an event summary. Athletes with a discrepancy are marked with "!".
func (r *Renderer) Event(w io.Writer, s aggregate.EventSummary) error {
	if r.format == FormatJSON {
		return r.writeJSON(w, s)
	}

	ew := &errWriter{w: w}
	ew.printf("Event %s (%s)\n", s.EventName, s.EventID)
	ew.printf("%-20s %d\n", "Confirmed athletes", s.ConfirmedAthletes)
	ew.printf("%-20s %d\n", "Paid athletes", s.PaidAthletes)
	ew.printf("%-20s %s\n", "Expected", r.money(s.AmountExpected))
	ew.printf("%-20s %s\n", "Received", r.money(s.AmountReceived))
	ew.printf("%-20s %s\n", "Pending", r.money(s.AmountPending))
	ew.printf("%-20s %d\n", "Discrepancies", s.Discrepancies)

	if len(s.PaidItems) > 0 {
		ew.printf("\nPaid items\n")
		for _, item := range s.PaidItems {
			ew.printf("  %-20s %4d %12s\n", item.Name, item.Quantity, r.money(item.Amount))
		}
	}

	if len(s.Athletes) > 0 {
		ew.printf("\nAthletes\n")
		for _, a := range s.Athletes {
			ew.printf("  %-20s %12s%s\n", a.AthleteName, r.money(a.AmountPaid), mark(a.HasDiscrepancy))
			for _, item := range a.Items {
				ew.printf("    %-18s confirmed %d paid %d%s\n",
					item.Name, item.ConfirmedQuantity, item.PaidQuantity, mark(item.HasDiscrepancy))
			}
		}
	}
	return ew.err
}

// Organization writes one line per event followed by the totals.
func (r *Renderer) Organization(w io.Writer, s aggregate.OrganizationSummary) error {
	if r.format == FormatJSON {
		return r.writeJSON(w, s)
	}

	ew := &errWriter{w: w}
	ew.printf("Organization %s\n", s.OrganizationID)
	ew.printf("  %-20s %12s %12s %12s\n", "Event", "Expected", "Received", "Pending")
	for _, ev := range s.Events {
		ew.printf("  %-20s %12s %12s %12s%s\n",
			ev.EventName, r.money(ev.Expected), r.money(ev.Received), r.money(ev.Pending), mark(ev.Discrepancies > 0))
	}
	ew.printf("  %-20s %12s %12s %12s\n",
		"Total", r.money(s.TotalExpected), r.money(s.TotalReceived), r.money(s.TotalPending))
	ew.printf("%-20s %d\n", "Discrepancies", s.TotalDiscrepancies)
	return ew.err
}

// Championship writes the expected cost per organization and the global totals.
func (r *Renderer) Championship(w io.Writer, s aggregate.ChampionshipSummary) error {
	if r.format == FormatJSON {
		return r.writeJSON(w, s)
	}

	ew := &errWriter{w: w}
	ew.printf("Championship %s\n", s.ChampionshipID)
	for _, org := range s.Organizations {
		ew.printf("\n%s: %d confirmed\n", org.OrganizationName, org.ConfirmedAthletes)
		for _, item := range org.Items {
			kind := "per athlete"
			if item.Fixed {
				kind = "fixed share"
			}
			ew.printf("  %-20s %-12s %12s\n", item.Name, kind, r.money(item.Amount))
		}
		ew.printf("  %-33s %12s\n", "Expected", r.money(org.Expected))
		ew.printf("  %-33s %12s\n", "Pending", r.money(org.Pending))
	}
	ew.printf("\n%-20s %d\n", "Confirmed athletes", s.TotalConfirmed)
	ew.printf("%-20s %s\n", "Total expected", r.money(s.TotalExpected))
	ew.printf("%-20s %s\n", "Total received", r.money(s.TotalReceived))
	ew.printf("%-20s %s\n", "Total pending", r.money(s.TotalPending))
	return ew.err
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
