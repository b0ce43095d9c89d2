// Package bootstrap assembles the grounding engine from configuration: it
// loads the bulk lookup tables, parses the curated maps, and wires the domain
// services.  Both the CLI and the API server build their engines through this
// package so that the two surfaces can never drift apart in behavior.
package bootstrap

import (
	"context"

	"github.com/biotext/bioground/internal/application/mapping"
	"github.com/biotext/bioground/internal/application/reporting"
	"github.com/biotext/bioground/internal/config"
	"github.com/biotext/bioground/internal/domain/agent"
	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/messaging/kafka"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/prometheus"
	"github.com/biotext/bioground/internal/infrastructure/remote/ebi"
	"github.com/biotext/bioground/internal/infrastructure/resources"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// Options carries the optional infrastructure a caller wants wired in.  Every
// field may be left zero: the engine then runs from local files with network
// and messaging disabled.
type Options struct {
	// Store overrides the resource store.  Defaults to a filesystem store
	// rooted at resources.dir; the API server passes an object-storage store
	// here when resources.source is "minio".
	Store resources.ResourceStore

	// Remote overrides the ChEBI web-service client.  Defaults to a plain
	// HTTP client when remote.enabled is set, disabled otherwise.  The API
	// server passes a cache-backed client here.
	Remote domaingrounding.RemoteEntryClient

	// Hierarchy overrides the is-a oracle.  Defaults to an in-memory
	// hierarchy built from the relation tables; the API server passes the
	// graph-database oracle here when one is configured.
	Hierarchy domaingrounding.HierarchyOracle

	// Tables overrides the bulk lookup tables, e.g. when they come from the
	// relational xref store instead of TSV files.  All three must be set
	// together.
	Genes *resources.GeneTable
	Chems *resources.ChemTable
	Terms *resources.TermTable

	Metrics  *prometheus.Metrics
	Producer kafka.EventProducer

	// Disambiguator plugs in an optional post-lookup disambiguation model.
	Disambiguator domaingrounding.Disambiguator
}

// Components is the assembled engine.
type Components struct {
	Genes *resources.GeneTable
	Chems *resources.ChemTable
	Terms *resources.TermTable

	GroundingMap grounding.GroundingMap
	AgentMap     map[string]*agent.Agent
	Hierarchy    domaingrounding.HierarchyOracle

	Mapping   *mapping.Service
	Reporting *reporting.Service

	// Watcher is non-nil when resources.watch is enabled; the caller runs it.
	Watcher *resources.GroundingMapWatcher

	closers []func()
}

// Close releases resources the bootstrap created itself, currently the
// self-built remote client's rate limiter.  Infrastructure passed in via
// Options stays owned by the caller.
func (c *Components) Close() {
	for _, fn := range c.closers {
		fn()
	}
	c.closers = nil
}

// New assembles the engine.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, opts Options) (*Components, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	genes, chems, terms := opts.Genes, opts.Chems, opts.Terms
	store := opts.Store
	if store == nil {
		store = resources.NewFSStore(cfg.Resources.Dir)
	}
	loader := resources.NewLoader(store, log)

	var err error
	if genes == nil {
		if genes, err = loader.LoadGeneTable(ctx); err != nil {
			return nil, err
		}
	}
	if chems == nil {
		if chems, err = loader.LoadChemTable(ctx); err != nil {
			return nil, err
		}
	}
	if terms == nil {
		if terms, err = loader.LoadTermTable(ctx); err != nil {
			return nil, err
		}
	}

	gm, err := resources.LoadGroundingMap(
		cfg.Resources.GroundingMapPath,
		cfg.Resources.IgnorePath,
		cfg.Resources.MisgroundingMapPath,
		log)
	if err != nil {
		return nil, err
	}

	var agentMap map[string]*agent.Agent
	if cfg.Resources.AgentMapPath != "" {
		if agentMap, err = resources.LoadAgentMap(cfg.Resources.AgentMapPath); err != nil {
			return nil, err
		}
	}

	oracle := opts.Hierarchy
	if oracle == nil {
		mem, err := loader.LoadHierarchy(ctx)
		if err != nil {
			return nil, err
		}
		oracle = mem
	}

	var lookupObs ebi.LookupObserver
	var pipelineObs domaingrounding.PipelineObserver
	if opts.Metrics != nil {
		lookupObs = opts.Metrics
		pipelineObs = opts.Metrics
	}

	var closers []func()
	remote := opts.Remote
	if remote == nil {
		if cfg.Remote.Enabled {
			client := ebi.NewClient(ebi.Config{
				BaseURL:       cfg.Remote.ChEBIBaseURL,
				Timeout:       cfg.Remote.Timeout,
				RatePerSecond: cfg.Remote.RatePerSecond,
				Observer:      lookupObs,
			}, log)
			closers = append(closers, client.Close)
			remote = client
		} else {
			remote = domaingrounding.NewDisabledRemoteClient()
		}
	}

	normalizer := domaingrounding.NewChEBINormalizer(chems, remote, log)
	params := domaingrounding.MapperParams{
		GroundingMap:  gm,
		AgentMap:      agentMap,
		Reconciler:    domaingrounding.NewReconciler(genes, log),
		Namer:         domaingrounding.NewNamer(genes, terms, normalizer),
		Normalizer:    normalizer,
		Disambiguator: opts.Disambiguator,
		Observer:      pipelineObs,
		Logger:        log,
		Rename:        true,
	}

	mappingSvc := mapping.NewService(params, domaingrounding.NewSelector(oracle),
		opts.Metrics, opts.Producer, log)

	comps := &Components{
		Genes:        genes,
		Chems:        chems,
		Terms:        terms,
		GroundingMap: gm,
		AgentMap:     agentMap,
		Hierarchy:    oracle,
		Mapping:      mappingSvc,
		Reporting:    reporting.NewService(genes, log),
		closers:      closers,
	}

	if cfg.Resources.Watch && cfg.Resources.Source == "fs" {
		watcher, err := resources.NewGroundingMapWatcher(
			cfg.Resources.GroundingMapPath,
			cfg.Resources.IgnorePath,
			cfg.Resources.MisgroundingMapPath,
			mappingSvc.UpdateGroundingMap,
			log)
		if err != nil {
			return nil, err
		}
		comps.Watcher = watcher
	}

	log.Info("grounding engine assembled",
		logging.Int("genes", genes.Size()),
		logging.Int("chemicals", chems.Size()),
		logging.Int("grounding_map_entries", len(gm)),
		logging.Int("agent_map_entries", len(agentMap)))

	return comps, nil
}

//Personal.AI order the ending
