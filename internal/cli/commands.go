// Package cli implements the eers command tree.
package cli

import (
	"bufio"
	"context"
	"errors"
	"exobio-route-sorter/internal/adapters/repositories"
	"exobio-route-sorter/internal/app"
	"exobio-route-sorter/internal/config"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
	"exobio-route-sorter/internal/report"
	"exobio-route-sorter/internal/services"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Deps are the process-level collaborators of the command tree.
type Deps struct {
	In  io.Reader
	Out io.Writer

	// LoadConfig reads settings; defaults to config.Load.
	LoadConfig func() (config.Config, error)

	// NewResolver builds the coordinate resolver with fetch wrapped around the
	// network lookups only; the returned func releases it.
	NewResolver func(cfg config.Config, fetch app.Wrap) (ports.CoordinateResolver, func() error, error)
}

func (d *Deps) withDefaults() {
	if d.LoadConfig == nil {
		d.LoadConfig = config.Load
	}
	if d.NewResolver == nil {
		d.NewResolver = func(cfg config.Config, fetch app.Wrap) (ports.CoordinateResolver, func() error, error) {
			r, err := app.NewResolver(cfg, fetch)
			if err != nil {
				return nil, nil, err
			}
			return r, r.Close, nil
		}
	}
}

// NewRootCommand builds "eers". Without a subcommand it behaves like "eers route".
func NewRootCommand(version string, deps Deps) *cobra.Command {
	deps.withDefaults()

	route := newRouteCommand(&deps)

	root := &cobra.Command{
		Use:   "eers",
		Short: "Elite Exobiologist Route Sorter",
		Long: `eers orders a list of star systems into a travel route.
Starting from your current system it repeatedly jumps to the closest
unvisited target, using coordinates from EDSM. The result is a greedy
route, not a guaranteed shortest one.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          route.RunE,
	}
	root.Flags().AddFlagSet(route.Flags())
	root.SetIn(deps.In)
	root.SetOut(deps.Out)

	root.AddCommand(route, newTargetsCommand(&deps))
	return root
}

func newRouteCommand(deps *Deps) *cobra.Command {
	var targetsPath, start string

	cmd := &cobra.Command{
		Use:   "route [START SYSTEM]",
		Short: "Sort the target systems into a greedy route",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && start == "" {
				start = args[0]
			}
			return runRoute(cmd.Context(), deps, targetsPath, start)
		},
	}
	cmd.Flags().StringVarP(&targetsPath, "targets", "t", "", "target file (default $TARGETS_PATH or target_data_input.txt)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "starting system (prompted for when empty)")
	return cmd
}

func newTargetsCommand(deps *Deps) *cobra.Command {
	var targetsPath string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the systems parsed from the target file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			if targetsPath == "" {
				targetsPath = cfg.TargetsPath
			}

			targets, err := repositories.NewFileTargetRepository(targetsPath).ListTargets(cmd.Context())
			if err != nil {
				fmt.Fprintf(deps.Out, "Error: %v\n", err)
				return nil
			}
			return writeTargets(deps.Out, targets)
		},
	}
	cmd.Flags().StringVarP(&targetsPath, "targets", "t", "", "target file (default $TARGETS_PATH or target_data_input.txt)")
	return cmd
}

func runRoute(ctx context.Context, deps *Deps, targetsPath, start string) error {
	out := deps.Out

	fmt.Fprintln(out, "Elite Exobiologist Route Sorter (EERS)")
	fmt.Fprintln(out, "--------------------------------------")

	if strings.TrimSpace(start) == "" {
		start = prompt(deps.In, out, "Enter your starting system: ")
	}
	start = strings.TrimSpace(start)
	if start == "" {
		fmt.Fprintln(out, "Error: Starting system cannot be empty.")
		return nil
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	if targetsPath == "" {
		targetsPath = cfg.TargetsPath
	}

	fetch := func(next ports.CoordinateResolver) ports.CoordinateResolver {
		return &fetchProgress{next: next, out: out, start: start}
	}
	resolver, closeResolver, err := deps.NewResolver(cfg, fetch)
	if err != nil {
		return err
	}
	defer closeResolver()

	repo := repositories.NewFileTargetRepository(targetsPath)
	progress := &routeProgress{next: resolver, out: out, start: start}

	sum, err := services.SortTargets(ctx, repo, progress, start)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoTargets):
		fmt.Fprintf(out, "Error: No target systems available. Please check your input file (%s).\n", targetsPath)
		return nil
	case errors.Is(err, services.ErrStartUnresolved):
		fmt.Fprintf(out, "Error: Could not fetch coordinates for starting system '%s'.\n", start)
		return nil
	default:
		return err
	}

	if sum.Exhausted {
		fmt.Fprintln(out, "Warning: All remaining systems failed coordinate lookup. Route calculation incomplete.")
	}

	return report.Write(out, sum)
}

func prompt(in io.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if in == nil {
		return ""
	}
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}

func writeTargets(out io.Writer, targets []domain.Target) error {
	if len(targets) == 0 {
		fmt.Fprintln(out, "No targets found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSYSTEM\tTARGET BODIES")
	for i, t := range targets {
		annotation := t.Annotation
		if annotation == "" {
			annotation = report.NotAvailable
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, t.System, annotation)
	}
	fmt.Fprintf(w, "\nTotal: %d\n", len(targets))
	return w.Flush()
}

// fetchProgress announces lookups that go to the network.
type fetchProgress struct {
	next  ports.CoordinateResolver
	out   io.Writer
	start string
}

func (p *fetchProgress) Resolve(ctx context.Context, system string) (domain.Position, error) {
	if system == p.start {
		fmt.Fprintf(p.out, "Fetching coordinates for starting system '%s'...\n", system)
	} else {
		fmt.Fprintf(p.out, "Fetching coordinates for '%s'...\n", system)
	}
	return p.next.Resolve(ctx, system)
}

// routeProgress reports the phases of a run as the resolver sees them: the
// start resolving opens the route scan, a target failing is skipped.
type routeProgress struct {
	next  ports.CoordinateResolver
	out   io.Writer
	start string
}

func (p *routeProgress) Resolve(ctx context.Context, system string) (domain.Position, error) {
	pos, err := p.next.Resolve(ctx, system)
	switch {
	case system == p.start && err == nil:
		fmt.Fprintln(p.out, "\nCalculating optimal route using Greedy Algorithm...")
	case system != p.start && err != nil:
		fmt.Fprintf(p.out, "Warning: Skipping system '%s' due to missing coordinates.\n", system)
	}
	return pos, err
}
