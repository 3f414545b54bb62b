package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/transpeq/fleetboard/config"
	"github.com/transpeq/fleetboard/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export schedules to json, csv or xlsx",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: json, csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().Int64Var(&boardCompanyID, "company", 0, "filter by company id")
	exportCmd.Flags().StringVar(&boardStart, "start", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&boardEnd, "end", "", "end date (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch exportFormat {
	case "json":
		return export.WriteJSON(out, records)
	case "csv":
		return export.WriteCSV(out, records)
	case "xlsx":
		return export.WriteXLSX(out, records)
	default:
		return fmt.Errorf("unsupported format: %s", exportFormat)
	}
}
