package cli

import (
	"strings"

	"styleguide/internal/report"

	"github.com/spf13/cobra"
)

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search query...",
		Short: "Search the online style guide",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			svc := a.service(cfg, nil)
			if !svc.Online() {
				a.logger.Info("Live lookups are disabled; returning the site search link only")
			}
			sr := svc.Search(cmd.Context(), strings.Join(args, " "))
			if sr.Error != "" && svc.Online() {
				a.logger.Warn("Search incomplete", "error", sr.Error)
			}
			return a.emit(cmd, report.Search(sr), sr)
		},
	}
}

func (a *app) guidanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guidance issue-type [term]",
		Short: "Fetch official guidance for an issue type",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			var term string
			if len(args) == 2 {
				term = args[1]
			}
			svc := a.service(cfg, nil)
			if !svc.Online() {
				a.logger.Info("Live lookups are disabled; no official guidance is fetched")
			}
			gr := svc.Guidance(cmd.Context(), args[0], term)
			if gr.Error != "" && svc.Online() {
				a.logger.Warn("Guidance unavailable", "error", gr.Error)
			}
			return a.emit(cmd, report.Guidance(gr), gr)
		},
	}
}
