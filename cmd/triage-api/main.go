// @title         Triage API
// @version       0.1.0
// @description   Message classification and prompt preparation endpoints

package main

import (
	"context"
	"time"

	"triage/internal/platform/config"
	"triage/internal/platform/kv"
	"triage/internal/platform/logger"
	phttp "triage/internal/platform/net/http"

	"triage/internal/core/lemma"
	"triage/internal/core/normalize"

	"triage/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	lemmaCfg := root.Prefix("SERVICE_LEMMA_")

	// bring up logging early
	l := logger.Get()

	// learned-dictionary store
	st, err := kv.Open(lemmaCfg.MayString("KV_PATH", "/var/lib/triage/triage.db"))
	if err != nil {
		l.Panic().Err(err).Msg("kv.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close kv store")
		}
	}()

	// static verb pack
	pack, err := lemma.Load()
	if err != nil {
		l.Panic().Err(err).Msg("verb pack load failed")
	}

	// optional model-backed fallback analyzer
	var analyzer lemma.Analyzer
	if lemmaCfg.MayBool("ONNX_ENABLED", false) {
		onnx, err := lemma.NewONNXAnalyzer(lemma.ONNXConfig{
			HFRepo:         lemmaCfg.MayString("ONNX_REPO", lemma.DefaultHFRepo),
			CacheDir:       lemmaCfg.MayString("ONNX_CACHE_DIR", ""),
			OrtLibraryPath: lemmaCfg.MayString("ORT_LIBRARY", ""),
		})
		if err != nil {
			l.Panic().Err(err).Msg("onnx analyzer init failed")
		}
		defer func() {
			if err := onnx.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close onnx analyzer")
			}
		}()
		analyzer = onnx
	}

	resolver := lemma.NewResolver(pack, analyzer, st, lemma.Config{
		MemoSize:      lemmaCfg.MayInt("MEMO_SIZE", lemma.DefaultMemoSize),
		FlushEvery:    lemmaCfg.MayInt("FLUSH_EVERY", lemma.DefaultFlushEvery),
		FlushInterval: lemmaCfg.MayDuration("FLUSH_INTERVAL", lemma.DefaultFlushInterval),
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := resolver.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to flush learned dictionary")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			KV:             st,
			Logger:         l,
			Normalizer:     normalize.New(0),
			Lemmas:         resolver,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
