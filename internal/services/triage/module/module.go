// Package module wires triage into the API using modkit
package module

import (
	"net/http"

	modkit "triage/internal/modkit"
	"triage/internal/modkit/httpkit"

	"triage/internal/core/lemma"
	"triage/internal/core/normalize"
	thttp "triage/internal/services/triage/http"
	tsvc "triage/internal/services/triage/service"
)

// Ports declares the pipeline dependencies injected by the host process. The
// resolver owns background state (learned dictionary, persistence), so its
// lifecycle belongs to main, not to this module.
type Ports struct {
	Normalizer *normalize.Normalizer
	Lemmas     *lemma.Resolver
}

// Module implements the triage API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc tsvc.Service
}

// New constructs the triage module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("triage"),
		modkit.WithPrefix("/triage"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Normalizer == nil || injected.Lemmas == nil {
		panic("triage module requires Normalizer and Lemmas ports")
	}

	cfg := FromConfig(deps.Cfg)
	svc := tsvc.New(injected.Normalizer, injected.Lemmas, tsvc.Options{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = injected

	external := b.Register
	m.register = func(r httpkit.Router) {
		thttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Middlewares returns the module middleware stack
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the injected pipeline ports for cross-module lookups
func (m *Module) Ports() any { return m.ports }
