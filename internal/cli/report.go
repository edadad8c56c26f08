package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/report"
	"github.com/mmynk/clubledger/internal/service"
	"github.com/mmynk/clubledger/internal/storage/sqlite"
)

// ReportOptions holds flags shared by report subcommands.
type ReportOptions struct {
	Format string
	Lang   string
}

// NewReportCommand creates the report command and its event, organization
// and championship subcommands. Reports read the database directly with
// admin rights.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print payment summaries",
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", string(report.FormatText), "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language for amounts (BCP 47 tag)")

	cmd.AddCommand(&cobra.Command{
		Use:   "event <event-id>",
		Short: "Totals and per-athlete breakdown of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalytics(rootOpts, opts, func(svc *service.AnalyticsService, r *report.Renderer) error {
				summary, err := svc.EventSummary(cmd.Context(), adminSession, args[0])
				if err != nil {
					return err
				}
				return r.Event(cmd.OutOrStdout(), summary)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "organization <organization-id>",
		Short: "Totals of every event of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalytics(rootOpts, opts, func(svc *service.AnalyticsService, r *report.Renderer) error {
				summary, err := svc.OrganizationSummary(cmd.Context(), adminSession, args[0])
				if err != nil {
					return err
				}
				return r.Organization(cmd.OutOrStdout(), summary)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "championship <championship-id>",
		Short: "Expected cost per participating organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalytics(rootOpts, opts, func(svc *service.AnalyticsService, r *report.Renderer) error {
				summary, err := svc.ChampionshipSummary(cmd.Context(), adminSession, args[0])
				if err != nil {
					return err
				}
				return r.Championship(cmd.OutOrStdout(), summary)
			})
		},
	})

	return cmd
}

var adminSession = auth.Session{UserID: "cli", Role: models.RoleAdmin}

func withAnalytics(rootOpts *RootOptions, opts *ReportOptions, fn func(*service.AnalyticsService, *report.Renderer) error) error {
	renderer, err := report.New(report.Format(opts.Format), opts.Lang)
	if err != nil {
		return err
	}

	var store *sqlite.SQLiteStore
	if store, err = openStore(rootOpts); err != nil {
		return err
	}
	defer store.Close()

	return fn(service.NewAnalyticsService(store, rootOpts.Logger), renderer)
}
