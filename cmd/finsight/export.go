package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/Veraticus/finsight/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Export formats.
const (
	formatCSV    = "csv"
	formatXLSX   = "xlsx"
	formatSQLite = "sqlite"
	formatSheets = "sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Export every result table",
		Long: `Run every analysis and export the resulting tables.

Formats:
  csv     one CSV file per table in --dir
  xlsx    one workbook with a sheet per table
  sqlite  one SQLite database with a table per result table
  sheets  a Google Sheets spreadsheet with a tab per table`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", formatXLSX, "export format (csv, xlsx, sqlite, sheets)")
	cmd.Flags().StringP("dir", "o", "", "output directory (default from export.dir)")
	cmd.Flags().String("spreadsheet-id", "", "existing Google Sheets spreadsheet to update")

	_ = viper.BindPFlag(config.KeyExportDir, cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	switch format {
	case formatCSV, formatXLSX, formatSQLite, formatSheets:
	default:
		return common.NewUserError(fmt.Sprintf("unknown export format %q", format), common.ErrInvalidConfig)
	}

	ledger, analysis, err := analyzeSources(cmd, args)
	if err != nil {
		return err
	}
	tables := export.AnalysisTables(ledger, analysis)

	ctx := cmd.Context()
	dir := config.ExpandPath(viper.GetString(config.KeyExportDir))
	w := cmd.OutOrStdout()

	switch format {
	case formatCSV:
		paths, err := export.WriteCSVFiles(dir, tables)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Wrote %d CSV files to %s", len(paths), dir)))
	case formatXLSX:
		path := filepath.Join(dir, "finsight.xlsx")
		if err := export.SaveWorkbook(path, tables); err != nil {
			return err
		}
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Wrote %d sheets to %s", len(tables), path)))
	case formatSQLite:
		path := filepath.Join(dir, "finsight.db")
		if err := export.WriteSQLite(ctx, path, tables); err != nil {
			return err
		}
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Wrote %d tables to %s", len(tables), path)))
	case formatSheets:
		cfg, err := config.LoadSheetsConfig()
		if err != nil {
			return common.NewUserError("Google Sheets is not configured", err)
		}
		publisher, err := sheets.NewPublisher(ctx, *cfg, slog.Default())
		if err != nil {
			return err
		}
		id, err := publisher.Publish(ctx, tables)
		if err != nil {
			return fmt.Errorf("failed to publish to Google Sheets: %w", err)
		}
		fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Published %d tabs to https://docs.google.com/spreadsheets/d/%s", len(tables), id)))
	}

	common.LogInfo("export complete", common.Fields{"format": format, "tables": len(tables)})
	return nil
}
