package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/transpeq/fleetboard/auth"
	"github.com/transpeq/fleetboard/config"
	"github.com/transpeq/fleetboard/connectors/clients/scheduleapi"
	"github.com/transpeq/fleetboard/core/aggregate"
)

var (
	boardCompanyID int64
	boardUF        string
	boardProfile   string
	boardStart     string
	boardEnd       string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Board related commands",
}

var boardMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Fetch schedules and print aggregated dashboard metrics",
	RunE:  runBoardMetrics,
}

func init() {
	boardMetricsCmd.Flags().Int64Var(&boardCompanyID, "company", 0, "filter by company id")
	boardMetricsCmd.Flags().StringVar(&boardUF, "uf", "", "filter by UF code")
	boardMetricsCmd.Flags().StringVar(&boardProfile, "profile", "", "filter by capacity profile")
	boardMetricsCmd.Flags().StringVar(&boardStart, "start", "", "start date (YYYY-MM-DD)")
	boardMetricsCmd.Flags().StringVar(&boardEnd, "end", "", "end date (YYYY-MM-DD)")
	boardCmd.AddCommand(boardMetricsCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardMetrics(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client := newAPIClient(cfg)

	filter, err := buildFilter()
	if err != nil {
		return err
	}
	records, err := client.ListSchedules(ctx, filter)
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}
	cat, err := client.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	metrics := aggregate.Compute(records, cat.Goals())
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(metrics)
}

func newAPIClient(cfg *config.Config) *scheduleapi.Client {
	var authorizer scheduleapi.Authorizer
	if cfg.Auth.Enabled {
		authorizer = auth.NewClientCred(cfg.Auth.Client)
	}
	return scheduleapi.New(cfg.Collaborator, authorizer)
}

func buildFilter() (scheduleapi.ListFilter, error) {
	f := scheduleapi.ListFilter{
		CompanyID:   boardCompanyID,
		UF:          boardUF,
		ProfileName: boardProfile,
	}
	var err error
	if f.StartDate, err = parseDateFlag(boardStart); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDateFlag(boardEnd); err != nil {
		return f, err
	}
	return f, nil
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
