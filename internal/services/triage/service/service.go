// Package service orchestrates the triage pipeline: normalize, lemmatize,
// consult the result cache, classify, build the model payload.
package service

import (
	"context"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"triage/internal/core/classify"
	"triage/internal/core/langhint"
	"triage/internal/core/lemma"
	"triage/internal/core/normalize"
	"triage/internal/core/scopes"
	"triage/internal/platform/logger"
	"triage/internal/services/prompt"
	"triage/internal/services/triage/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options control service behavior
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Svc implements the service port
type Svc struct {
	norm   *normalize.Normalizer
	lemmas *lemma.Resolver
	cache  *resultCache

	totalRequests  atomic.Uint64
	errorCount     atomic.Uint64
	totalLatencyUS atomic.Int64
}

// New constructs the service
func New(norm *normalize.Normalizer, lemmas *lemma.Resolver, opt Options) *Svc {
	if norm == nil {
		panic("triage.Service requires a non nil Normalizer")
	}
	if lemmas == nil {
		panic("triage.Service requires a non nil lemma Resolver")
	}
	return &Svc{
		norm:   norm,
		lemmas: lemmas,
		cache:  newResultCache(opt.CacheSize, opt.CacheTTL),
	}
}

// Preprocess runs the full pipeline for one message. It never fails on
// message content; blank input produces an EMPTY_INPUT response.
func (s *Svc) Preprocess(ctx context.Context, in domain.PreprocessInput) (domain.PreprocessOutput, error) {
	totalStart := time.Now()
	s.totalRequests.Add(1)

	var lat domain.Latencies

	t0 := time.Now()
	message := strings.TrimSpace(in.Message)
	lat.ExtractionMS = millis(t0)

	if message == "" {
		s.errorCount.Add(1)
		logger.C(ctx).Warn().Str("from", in.From).Msg("empty message")
		return domain.PreprocessOutput{
			Error:         "EMPTY_INPUT",
			OpenAIPayload: prompt.EmptyInput(),
		}, nil
	}

	t0 = time.Now()
	normalized := s.norm.Normalize(message)
	lemmatized := s.lemmas.LemmatizeText(ctx, normalized)
	lat.NormalizationMS = millis(t0)

	lang := langhint.Lang(in.Ctx.Lang)
	if !lang.Valid() {
		lang = langhint.Detect(message)
	}

	t0 = time.Now()
	key := cacheKey(lemmatized, lang)
	cached, hit := s.cache.get(key)
	lat.CacheLookupMS = millis(t0)

	if hit {
		s.recordLatency(totalStart)
		logger.C(ctx).Info().
			Str("log_type", "cache_hit").
			Str("cache_key", key[:16]).
			Float64("latency_cache_lookup_ms", lat.CacheLookupMS).
			Msg("classification served from cache")
		return cached, nil
	}

	t0 = time.Now()
	verbs := s.lemmas.ActionVerbs(ctx, lemmatized)
	scopeSet := scopes.Detect(lemmatized)
	result := classify.Classify(classify.Input{
		Original:    message,
		Normalized:  normalized,
		Lemmatized:  lemmatized,
		ActionVerbs: verbs,
		Scopes:      scopeSet,
	})
	lat.ClassificationMS = millis(t0)

	t0 = time.Now()
	payload := prompt.Build(prompt.Request{
		Bucket:      result.Bucket,
		Lang:        lang,
		Original:    message,
		Scopes:      result.Scopes,
		History:     in.History,
		Model:       in.Ctx.Model,
		Temperature: in.Ctx.Temperature,
	})
	lat.PayloadMS = millis(t0)
	lat.TotalMS = millis(totalStart)

	out := domain.PreprocessOutput{
		Message:        message,
		NormalizedText: normalized,
		LemmatizedText: lemmatized,
		Lang:           string(lang),
		OpenAIPayload:  payload,
		Classification: domain.Classification{
			Bucket:  string(result.Bucket),
			Reasons: result.Reasons,
			Scope:   scopeSlice(result.Scopes),
		},
		Performance: lat,
	}

	s.cache.put(key, out)
	s.recordLatency(totalStart)

	logger.C(ctx).Info().
		Str("log_type", "preprocessing_result").
		Str("bucket", string(result.Bucket)).
		Strs("scope", out.Classification.Scope).
		Int("message_length", len(message)).
		Str("model", payload.Model).
		Float64("latency_total_ms", lat.TotalMS).
		Msg("message processed")

	return out, nil
}

// Webhook adapts the chat-gateway envelope onto Preprocess with the gateway
// defaults: forced Portuguese and a low temperature.
func (s *Svc) Webhook(ctx context.Context, in domain.WebhookInput) (domain.WebhookOutput, error) {
	from := in.From
	if from == "" {
		from = "unknown"
	}
	logger.C(ctx).Info().
		Str("log_type", "webhook").
		Str("from", from).
		Int("message_length", len(in.Message)).
		Msg("webhook received")

	out, err := s.Preprocess(ctx, domain.PreprocessInput{
		Message: in.Message,
		From:    from,
		Ctx:     domain.RequestContext{Lang: "pt", Temperature: 0.3},
	})
	if err != nil {
		return domain.WebhookOutput{}, err
	}
	return domain.WebhookOutput{
		PreprocessOutput: out,
		Webhook: domain.WebhookInfo{
			EventID:    uuid.NewString(),
			From:       from,
			ReceivedAt: time.Now().Unix(),
		},
	}, nil
}

// Metrics snapshots the service counters.
func (s *Svc) Metrics(_ context.Context) (domain.MetricsOutput, error) {
	total := s.totalRequests.Load()
	hits := s.cache.hits.Load()
	misses := s.cache.misses.Load()
	errs := s.errorCount.Load()

	var hitRate, avgLatency, errRate float64
	if total > 0 {
		hitRate = round2(float64(hits) / float64(total) * 100)
		avgLatency = round2(float64(s.totalLatencyUS.Load()) / 1000 / float64(total))
		errRate = round2(float64(errs) / float64(total) * 100)
	}

	ls := s.lemmas.Stats()
	return domain.MetricsOutput{
		TotalRequests:       total,
		CacheHits:           hits,
		CacheMisses:         misses,
		CacheHitRatePercent: hitRate,
		CacheSize:           s.cache.len(),
		AvgLatencyMS:        avgLatency,
		ErrorCount:          errs,
		ErrorRatePercent:    errRate,
		Lemma: domain.LemmaStats{
			StaticForms:  ls.StaticForms,
			StaticBases:  ls.StaticBases,
			LearnedForms: ls.LearnedForms,
			MemoLen:      ls.MemoLen,
			StaticHits:   ls.StaticHits,
			LearnedHits:  ls.LearnedHits,
			FallbackHits: ls.FallbackHits,
			Unmatched:    ls.Unmatched,
		},
		Timestamp: time.Now().Unix(),
	}, nil
}

func (s *Svc) recordLatency(start time.Time) {
	s.totalLatencyUS.Add(time.Since(start).Microseconds())
}

func millis(start time.Time) float64 {
	return round2(float64(time.Since(start).Microseconds()) / 1000)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// scopeSlice keeps the scope list non-nil so JSON renders [] rather than null
func scopeSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
