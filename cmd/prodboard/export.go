package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dfagundes/prodboard/internal/db"
	"github.com/dfagundes/prodboard/internal/export"
	"github.com/dfagundes/prodboard/internal/period"
)

func newExportCmd() *cobra.Command {
	var (
		configPath  string
		periodToken string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export production records to an Excel file",
		Long:  "Writes the records of the selected period to producao_cabecotes_<date>.xlsx.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, periodToken, outDir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to prodboard config file")
	cmd.Flags().StringVar(&periodToken, "period", period.TokenAllTime, "period to export (hoje, 7dias, mes, completo)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the spreadsheet to")
	return cmd
}

func runExport(cmd *cobra.Command, configPath, periodToken, outDir string) error {
	_, gormDB, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	token := period.Canonical(periodToken)
	rows, err := st.ListInRange(period.Resolve(token, time.Now()))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no records in period %q, nothing to export", token)
	}

	data, err := export.Workbook(rows)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, export.Filename(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records (%s) to %s\n", len(rows), period.Label(token), path)
	return nil
}
