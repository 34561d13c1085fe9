package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/engcheck/internal/checklist"
	"github.com/dshills/engcheck/internal/diff"
	"github.com/dshills/engcheck/internal/logger"
	"github.com/dshills/engcheck/internal/registry"
	"github.com/dshills/engcheck/internal/render"
	"github.com/dshills/engcheck/internal/schema"
)

// generateFlags holds the parsed flags for generate-checklist.
type generateFlags struct {
	project string
	format  string
	out     string
}

func newGenerateCmd(setup func() (*app, error)) *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate-checklist",
		Short: "List the standards that apply to a project type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			return runGenerate(a, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.project, "project", "", "Project type tag, matched exactly (required)")
	f.StringVar(&flags.format, "format", "", "Output format: text, json or md (default from config)")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func runGenerate(a *app, flags generateFlags) error {
	if flags.project == "" {
		return codeError(exitUsage, "invalid flags: --project is required")
	}
	format, err := a.resolveFormat(flags.format)
	if err != nil {
		return err
	}

	standards, err := a.standards()
	if err != nil {
		return err
	}
	items := checklist.Build(standards, flags.project)
	logger.ForComponent("cli").Debug("checklist built", "project", flags.project, "items", len(items))
	if len(items) == 0 {
		a.warnUnknownProject(standards, flags.project)
	}

	renderer, err := render.NewRenderer(format, render.Options{Color: a.color(flags.out)})
	if err != nil {
		return codeError(exitUsage, "invalid format: %s", err)
	}
	out, err := renderer.RenderChecklist(&schema.Checklist{
		Tool:     "engcheck",
		Version:  version,
		Project:  flags.project,
		Registry: a.catalog.Path(),
		Items:    items,
	})
	if err != nil {
		return codeError(exitUsage, "rendering output: %s", err)
	}
	return a.write(flags.out, out)
}

// warnUnknownProject explains an empty checklist, which is usually a typo in
// the project type.
func (a *app) warnUnknownProject(standards []schema.Standard, project string) {
	a.warnf("no standards apply to project type %q", project)
	if s := checklist.Suggest(standards, project); len(s) > 0 {
		a.warnf("project types are case-sensitive; did you mean %s?", strings.Join(s, ", "))
	}
}

func newProjectsCmd(setup func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the project types named in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			return runProjects(a)
		},
	}
}

func runProjects(a *app) error {
	standards, err := a.standards()
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, p := range checklist.Projects(standards) {
		fmt.Fprintf(&sb, "%s\t%d\n", p, len(checklist.Build(standards, p)))
	}
	return a.write("", []byte(sb.String()))
}

func newDiffCmd(setup func() (*app, error)) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "diff-checklist <old-registry> <new-registry>",
		Short: "Show how a project's checklist changes between two registry files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			return runDiff(a, project, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project type tag, matched exactly (required)")
	return cmd
}

func runDiff(a *app, project, oldPath, newPath string) error {
	if project == "" {
		return codeError(exitUsage, "invalid flags: --project is required")
	}
	before, err := registry.Load(oldPath)
	if err != nil {
		return codeError(exitUsage, "loading registry: %s", err)
	}
	after, err := registry.Load(newPath)
	if err != nil {
		return codeError(exitUsage, "loading registry: %s", err)
	}

	changes := diff.Checklists(checklist.Build(before, project), checklist.Build(after, project))
	logger.ForComponent("cli").Debug("checklists compared",
		slog.String("project", project),
		slog.Int("changes", len(changes)))
	if len(changes) == 0 {
		return a.write("", []byte(fmt.Sprintf("No checklist changes for project type %q.\n", project)))
	}
	return a.write("", []byte(diff.Format(changes)))
}
