package cli

import (
	"errors"
	"fmt"

	"styleguide/internal/analyzer"
	"styleguide/internal/guidelines"
	"styleguide/internal/recommend"
	"styleguide/internal/report"
	"styleguide/internal/styleguide"

	"github.com/spf13/cobra"
)

func (a *app) analyzeCmd() *cobra.Command {
	var (
		analysisType string
		file         string
		sample       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text for voice, grammar, terminology and inclusive language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			text := styleguide.SampleText
			if !sample {
				if text, err = a.readText(cmd, cfg, args, file); err != nil {
					return err
				}
			}

			res := a.service(cfg, nil).Analyze(cmd.Context(), text, analysisType)
			if err := a.emit(cmd, report.Analysis(res), res, a.renderer().Badge(res)); err != nil {
				return err
			}
			return res.Err()
		},
	}

	cmd.Flags().StringVarP(&analysisType, "type", "t", string(analyzer.AnalysisComprehensive), "Analysis type (comprehensive, voice_tone, grammar, terminology, accessibility)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read text from a file, or - for stdin")
	cmd.Flags().BoolVar(&sample, "sample", false, "Analyze a built-in sample sentence")
	return cmd
}

func (a *app) improveCmd() *cobra.Command {
	var (
		focus string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "improve [text...]",
		Short: "Suggest concrete improvements for text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			text, err := a.readText(cmd, cfg, args, file)
			if err != nil {
				return err
			}

			imp := a.service(cfg, nil).SuggestImprovements(cmd.Context(), text, focus)
			if err := a.emit(cmd, report.Improvements(imp), imp, a.renderer().ImprovementsBadge(imp)); err != nil {
				return err
			}
			if imp.Error != "" {
				return errors.New(imp.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&focus, "focus", recommend.FocusAll, "Issue category to focus on")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read text from a file, or - for stdin")
	return cmd
}

func (a *app) guidelinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "guidelines [category]",
		Short:     "Show style guidelines for a category",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: guidelines.Categories,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			category := guidelines.CategoryAll
			if len(args) == 1 {
				category = args[0]
			}

			g, err := a.service(cfg, nil).Guidelines(category)
			if err != nil {
				return err
			}
			return a.emit(cmd, report.Guidelines(g), g)
		},
	}
}

func (a *app) termsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms term [term...]",
		Short: "Check terms against the terminology list",
		Long: `Check terms against the terminology list.

Terms may be given as separate arguments or comma-separated:

  styleguide terms email login
  styleguide terms "whitelist, e-mail"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := splitTerms(args)
			if len(terms) == 0 {
				return fmt.Errorf("no terms provided")
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			checks := a.service(cfg, nil).CheckTerms(terms)
			return a.emit(cmd, report.TermChecks(checks), checks)
		},
	}
}
