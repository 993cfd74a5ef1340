package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/browser"
	"github.com/noah-isme/course-viewer/internal/service"
)

func newBrowseCmd() *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The terminal owns stdout, so logs only go to stderr at warn and above.
			cfg.Log.Format = "console"
			if cfg.Log.Level == "" || cfg.Log.Level == "info" || cfg.Log.Level == "debug" {
				cfg.Log.Level = "warn"
			}
			logr, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			a, err := newApp(cmd.Context(), cfg, logr)
			if err != nil {
				logr.Error("catalog unavailable at startup", zap.Error(err))
				return err
			}
			defer a.Close()

			program := tea.NewProgram(browser.New(a.catalog, service.SplitList(columns)), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "visible columns (default all)")
	return cmd
}
