// Package api provides the HTTP API for the application
package api

import (
	"triage/internal/platform/config"
	"triage/internal/platform/kv"
	"triage/internal/platform/logger"
	phttp "triage/internal/platform/net/http"

	"triage/internal/core/lemma"
	"triage/internal/core/normalize"
	"triage/internal/core/version"

	"triage/internal/modkit"
	"triage/internal/modkit/httpkit"
	"triage/internal/modkit/module"
	"triage/internal/modkit/swaggerkit"

	metahttp "triage/internal/services/api/meta/http"
	metamod "triage/internal/services/api/meta/module"
	triagemod "triage/internal/services/triage/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	KV             *kv.Store
	Logger         *logger.Logger
	Normalizer     *normalize.Normalizer
	Lemmas         *lemma.Resolver
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		KV:  opt.KV,
	}

	// meta reports the verb pack state through a narrow callback so it never
	// touches the pipeline directly
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Classifier: func() metahttp.ClassifierResponse {
			st := opt.Lemmas.Stats()
			return metahttp.ClassifierResponse{
				PackVersion:  opt.Lemmas.Pack().Version,
				StaticForms:  st.StaticForms,
				LearnedForms: st.LearnedForms,
				Build:        version.Info(),
			}
		},
	}))

	triage := triagemod.New(deps, modkit.WithPorts(triagemod.Ports{
		Normalizer: opt.Normalizer,
		Lemmas:     opt.Lemmas,
	}))

	mods := []module.Module{
		meta,
		triage,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
