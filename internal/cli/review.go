package cli

import (
	"fmt"
	"strings"

	"styleguide/internal/documents"
	"styleguide/internal/report"
	"styleguide/internal/review"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReviews bounds parallel reviews in --dir mode.
const maxConcurrentReviews = 4

// documentReview pairs a scanned document with its report.
type documentReview struct {
	Path   string         `json:"path"`
	Report *review.Report `json:"report"`
}

func (a *app) reviewCmd() *cobra.Command {
	var (
		file     string
		dir      string
		docType  string
		audience string
		focus    string
	)

	cmd := &cobra.Command{
		Use:   "review [text...]",
		Short: "Review a document with scores and prioritized recommendations",
		Long: `Review a document with scores and prioritized recommendations.

Markdown frontmatter may set document_type and audience; explicit flags
win. With --dir every Markdown and text file under the directory is
reviewed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			svc := a.service(cfg, nil)
			loader := a.loader(cfg)

			if dir != "" {
				docs, err := loader.Scan(cmd.Context(), dir)
				if err != nil {
					return err
				}
				if len(docs) == 0 {
					return fmt.Errorf("no documents found in %s", dir)
				}

				reviews := make([]documentReview, len(docs))
				g, ctx := errgroup.WithContext(cmd.Context())
				g.SetLimit(maxConcurrentReviews)
				for i := range docs {
					g.Go(func() error {
						reviews[i] = documentReview{
							Path:   docs[i].Path,
							Report: svc.ReviewDocument(ctx, &docs[i], docType, audience, focus),
						}
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}

				var b strings.Builder
				for i, r := range reviews {
					if i > 0 {
						b.WriteString("\n---\n\n")
					}
					fmt.Fprintf(&b, "**File:** `%s`\n\n", r.Path)
					b.WriteString(report.Review(r.Report))
				}
				return a.emit(cmd, b.String(), reviews)
			}

			var rep *review.Report
			if file != "" && file != "-" {
				doc, err := loader.ReadFile(file)
				if err != nil {
					return err
				}
				rep = svc.ReviewDocument(cmd.Context(), doc, docType, audience, focus)
			} else {
				text, err := a.readText(cmd, cfg, args, file)
				if err != nil {
					return err
				}
				rep = svc.ReviewDocument(cmd.Context(), &documents.Document{Name: "stdin", Content: text}, docType, audience, focus)
			}

			if err := a.emit(cmd, report.Review(rep), rep); err != nil {
				return err
			}
			return rep.Err()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Review a file, or - for stdin")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Review every document under a directory")
	cmd.Flags().StringVar(&docType, "type", "", "Document type, for example tutorial or reference (default general)")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience, for example beginner or developer (default general)")
	cmd.Flags().StringVar(&focus, "focus", "", "Review focus (comprehensive, voice_tone, clarity, accessibility, compliance)")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
	return cmd
}
