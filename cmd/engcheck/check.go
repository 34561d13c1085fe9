package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/engcheck/internal/checklist"
	"github.com/dshills/engcheck/internal/compliance"
	"github.com/dshills/engcheck/internal/document"
	"github.com/dshills/engcheck/internal/extract"
	"github.com/dshills/engcheck/internal/logger"
	"github.com/dshills/engcheck/internal/redact"
	"github.com/dshills/engcheck/internal/render"
	"github.com/dshills/engcheck/internal/schema"
)

// checkFlags holds the parsed flags for check-document.
type checkFlags struct {
	project  string
	format   string
	out      string
	fail     bool
	evidence bool
	watch    bool
	debug    bool
}

func newCheckCmd(setup func() (*app, error)) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check-document <file|glob>...",
		Short: "Check documents against a project's checklist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("evidence") {
				flags.evidence = a.cfg.Evidence
			}
			if flags.watch {
				return runWatch(cmd.Context(), a, args, flags)
			}
			return runCheck(cmd.Context(), a, args, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.project, "project", "", "Project type tag, matched exactly (required)")
	f.StringVar(&flags.format, "format", "", "Output format: text, json or md (default from config)")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.BoolVar(&flags.fail, "fail", false, "Exit 2 if any document is not compliant")
	f.BoolVar(&flags.evidence, "evidence", false, "Include matched keywords and text snippets for satisfied items")
	f.BoolVar(&flags.watch, "watch", false, "Re-run the check when the registry or a document changes")
	f.BoolVar(&flags.debug, "debug", false, "Dump extracted document text (redacted) to stderr")
	return cmd
}

func runCheck(ctx context.Context, a *app, args []string, flags checkFlags) error {
	// --- Step 1: Validate flags ---
	if flags.project == "" {
		return codeError(exitUsage, "invalid flags: --project is required")
	}
	format, err := a.resolveFormat(flags.format)
	if err != nil {
		return err
	}

	// --- Step 2: Load registry and build checklist ---
	standards, err := a.standards()
	if err != nil {
		return err
	}
	items := checklist.Build(standards, flags.project)
	if len(items) == 0 {
		a.warnUnknownProject(standards, flags.project)
	}

	// --- Step 3: Resolve and extract documents ---
	paths, err := expandDocuments(args)
	if err != nil {
		return codeError(exitExtraction, "%s", err)
	}
	docs, err := loadDocuments(ctx, paths, a.cfg.Workers)
	if err != nil {
		if errors.Is(err, extract.ErrExtraction) {
			return codeError(exitExtraction, "%s", err)
		}
		return err
	}

	if flags.debug {
		for _, d := range docs {
			fmt.Fprintf(a.stderr, "=== DEBUG: extracted text (redacted): %s ===\n", d.Path)
			fmt.Fprintf(a.stderr, "%s\n", redact.Redact(d.Text))
			fmt.Fprintf(a.stderr, "=== END DEBUG ===\n")
		}
	}

	// --- Step 4: Evaluate ---
	runID := uuid.NewString()
	reports := make([]*schema.Report, 0, len(docs))
	failed := 0
	for _, d := range docs {
		rep := buildReport(a, runID, flags, items, d)
		if !compliance.Compliant(rep.Summary.Verdict) {
			failed++
		}
		reports = append(reports, rep)
	}

	// --- Step 5: Render and write ---
	renderer, err := render.NewRenderer(format, render.Options{
		Color:    a.color(flags.out),
		Evidence: flags.evidence,
	})
	if err != nil {
		return codeError(exitUsage, "invalid format: %s", err)
	}
	out, err := renderer.RenderReports(reports)
	if err != nil {
		return codeError(exitUsage, "rendering output: %s", err)
	}
	if err := a.write(flags.out, out); err != nil {
		return err
	}

	// --- Step 6: Evaluate --fail ---
	if flags.fail && failed > 0 {
		return codeError(exitNonCompliant, "%d of %d document(s) not compliant with project type %q", failed, len(reports), flags.project)
	}
	return nil
}

func buildReport(a *app, runID string, flags checkFlags, items []schema.Standard, d *document.Document) *schema.Report {
	issues := compliance.Evaluate(items, d.Text)
	rep := &schema.Report{
		Tool:    "engcheck",
		Version: version,
		RunID:   runID,
		Input: schema.Input{
			Document:     d.Path,
			DocumentHash: d.Hash,
			Project:      flags.project,
			Registry:     a.catalog.Path(),
			RegistryHash: a.catalog.Hash(),
		},
		Summary: compliance.Summarize(items, issues),
		Flags:   issues,
		Meta: schema.Meta{
			Pages:         d.Pages,
			PagesWithText: d.PagesWithText,
			Extractor:     d.Extractor,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		},
	}
	if flags.evidence {
		rep.Assessments = compliance.Assess(items, d.Text)
	}
	logger.ForComponent("cli").Debug("document evaluated",
		"document", d.Path,
		"verdict", rep.Summary.Verdict,
		"flags", len(issues),
		"pages_with_text", d.PagesWithText)
	return rep
}

// expandDocuments resolves arguments to document paths. Arguments containing
// glob metacharacters are expanded with doublestar ("**" spans directories)
// and must match at least one file. Duplicates are dropped; order follows
// the arguments, then match order within a glob.
func expandDocuments(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid document pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no documents match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

// loadDocuments extracts every path concurrently, at most workers at a
// time. Results are returned in path order. The first failure cancels the
// remaining extractions.
func loadDocuments(ctx context.Context, paths []string, workers int) ([]*document.Document, error) {
	docs := make([]*document.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range paths {
		g.Go(func() error {
			logger.ForComponent("cli").Debug("extracting document", "path", p)
			d, err := document.Open(ctx, p)
			if err != nil {
				return err
			}
			docs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
