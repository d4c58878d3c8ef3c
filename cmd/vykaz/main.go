package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vykaz/internal/backup"
	"github.com/vykaz/internal/config"
	"github.com/vykaz/internal/report"
	"github.com/vykaz/internal/storage"
	"github.com/vykaz/internal/visualization"
)

var (
	cfg        *config.Config
	db         *storage.Database
	reporter   *report.Reporter
	backupMgr  *backup.Manager
	visualizer *visualization.Visualizer
)

var rootCmd = &cobra.Command{
	Use:   "vykaz",
	Short: "Work-hour tracking with Czech holiday and work-time fund rules",
	Long: `Vykaz tracks per-day work activities for one or more employees,
inserts the mandatory lunch break automatically, and reconciles each
month against the Czech work-time fund.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
			return err
		}
		db, err = storage.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		reporter = report.New(db, cfg.ReportDir)
		backupMgr = backup.New(db)
		visualizer = visualization.New()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("employee", "E", "", "Employee to act on (overrides config)")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(absenceCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
