package cli

import (
	"github.com/meshsim/meshsim/internal/catalog"
	"github.com/meshsim/meshsim/internal/ecosystem"
	"github.com/meshsim/meshsim/internal/graph"
	"github.com/meshsim/meshsim/internal/impact"
	"github.com/meshsim/meshsim/internal/resolve"
)

// Environment is the loaded engine state every command operates on: the
// entity catalog, the dependency graph wired to it, and the analysis layers
// on top.
type Environment struct {
	Catalog    *catalog.Store
	Graph      *graph.Store
	Calculator *impact.Calculator
	Resolver   *resolve.Resolver
	Counts     ecosystem.Counts
}

// loadEnvironment builds the engine from the --ecosystem file. Every command
// needs one; a missing flag or unreadable file is a command error.
func loadEnvironment(opts *RootOptions) (*Environment, error) {
	if opts.Ecosystem == "" {
		return nil, WrapExitError(ExitCommandError, "--ecosystem is required", nil)
	}

	cat := catalog.NewStore()
	g := graph.New(graph.WithNameLookup(cat.NameOf))

	counts, err := ecosystem.LoadFile(opts.Ecosystem, cat, g)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load ecosystem", err)
	}

	return &Environment{
		Catalog:    cat,
		Graph:      g,
		Calculator: impact.NewCalculator(g, impact.WithDirectory(cat)),
		Resolver:   resolve.NewResolver(g),
		Counts:     counts,
	}, nil
}
