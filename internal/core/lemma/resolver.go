package lemma

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"triage/internal/platform/logger"
)

// Defaults for Config zero values
const (
	DefaultMemoSize      = 2000
	DefaultFlushEvery    = 10
	DefaultFlushInterval = 30 * time.Second
)

// Store is the durable persistence target for learned mappings. It only has
// to round-trip (surface form, base form) pairs; the resolver batches writes
// so implementations see few, larger PutBatch calls.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	PutBatch(ctx context.Context, entries map[string]string) error
}

// Config tunes the resolver.
type Config struct {
	MemoSize      int           // per-token memo LRU capacity
	FlushEvery    int           // persist queue size trigger
	FlushInterval time.Duration // persist queue time trigger
}

// Tier identifies which lookup tier resolved a token.
type Tier string

// Resolution tiers
const (
	TierStatic   Tier = "static"
	TierLearned  Tier = "learned"
	TierFallback Tier = "fallback"
)

// Resolution is a resolved token.
type Resolution struct {
	Base    string
	Matched bool
	Tier    Tier
}

// Stats is a point-in-time snapshot of resolver counters.
type Stats struct {
	StaticForms  int    `json:"static_forms"`
	StaticBases  int    `json:"static_bases"`
	LearnedForms int    `json:"learned_forms"`
	MemoLen      int    `json:"memo_len"`
	StaticHits   uint64 `json:"static_hits"`
	LearnedHits  uint64 `json:"learned_hits"`
	FallbackHits uint64 `json:"fallback_hits"`
	Unmatched    uint64 `json:"unmatched"`
}

// Resolver is the three-tier lemmatizer. It is safe for concurrent use; the
// only blocking call is the fallback analyzer, which runs without any lock
// held. Learned inserts are first-write-wins so a probabilistic analyzer can
// never make a stored mapping oscillate.
type Resolver struct {
	pack     *Pack
	analyzer Analyzer
	store    Store // may be nil (no durability)
	memo     *lru.Cache[string, Resolution]

	mu      sync.RWMutex
	learned map[string]string
	closed  bool

	queue chan learnedEntry
	wg    sync.WaitGroup
	cfg   Config

	staticHits   atomic.Uint64
	learnedHits  atomic.Uint64
	fallbackHits atomic.Uint64
	unmatched    atomic.Uint64
}

type learnedEntry struct{ surface, base string }

// NewResolver builds a Resolver. The learned tier is seeded from store (when
// non-nil); a load failure is logged and treated as an empty dictionary. The
// background persist goroutine starts immediately; call Close to flush it.
func NewResolver(pack *Pack, analyzer Analyzer, store Store, cfg Config) *Resolver {
	if cfg.MemoSize <= 0 {
		cfg.MemoSize = DefaultMemoSize
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = DefaultFlushEvery
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if analyzer == nil {
		analyzer = NoopAnalyzer{}
	}
	memo, _ := lru.New[string, Resolution](cfg.MemoSize)

	r := &Resolver{
		pack:     pack,
		analyzer: analyzer,
		store:    store,
		memo:     memo,
		learned:  make(map[string]string, 256),
		queue:    make(chan learnedEntry, 1024),
		cfg:      cfg,
	}

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if seed, err := store.Load(ctx); err != nil {
			logger.Named("lemma").Warn().Err(err).Msg("learned dictionary load failed; starting empty")
		} else if len(seed) > 0 {
			r.learned = seed
			logger.Named("lemma").Info().Int("entries", len(seed)).Msg("learned dictionary loaded")
		}
	}

	r.wg.Add(1)
	go r.persistLoop()
	return r
}

// Resolve maps one token (already normalized: lowercase, no diacritics) to
// its base verb form. Matched is false when no tier recognizes the token as a
// verb; the token itself is returned in that case so callers can fail open.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, bool) {
	res := r.resolve(ctx, token)
	return res.Base, res.Matched
}

func (r *Resolver) resolve(ctx context.Context, token string) Resolution {
	if token == "" {
		return Resolution{Base: token}
	}
	if v, ok := r.memo.Get(token); ok {
		r.countTier(v)
		return v
	}

	// tier 1: static table
	if base, ok := r.pack.Forms[token]; ok {
		res := Resolution{Base: base, Matched: true, Tier: TierStatic}
		r.memo.Add(token, res)
		r.staticHits.Add(1)
		return res
	}

	// tier 2: learned table
	r.mu.RLock()
	base, ok := r.learned[token]
	r.mu.RUnlock()
	if ok {
		res := Resolution{Base: base, Matched: true, Tier: TierLearned}
		r.memo.Add(token, res)
		r.learnedHits.Add(1)
		return res
	}

	// tier 3: analyzer fallback, never under a lock
	ar, err := r.analyzer.Analyze(ctx, token)
	if err != nil || !ar.IsVerb || ar.BaseForm == "" {
		if err != nil {
			logger.Named("lemma").Debug().Err(err).Str("token", token).Msg("analyzer unavailable; failing open")
		}
		res := Resolution{Base: token}
		r.memo.Add(token, res)
		r.unmatched.Add(1)
		return res
	}

	stored := r.commitLearned(token, ar.BaseForm)
	res := Resolution{Base: stored, Matched: true, Tier: TierFallback}
	r.memo.Add(token, res)
	r.fallbackHits.Add(1)
	return res
}

// commitLearned inserts first-write-wins and returns the stored base, which
// may be another goroutine's earlier answer.
func (r *Resolver) commitLearned(surface, base string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.learned[surface]; ok {
		return existing
	}
	r.learned[surface] = base

	// queue for durability; drop on overflow (re-derivable). The send stays
	// under mu: Close marks closed under the same lock before closing the
	// queue, so a late analyzer result can never send on a closed channel.
	if !r.closed {
		select {
		case r.queue <- learnedEntry{surface: surface, base: base}:
		default:
			logger.Named("lemma").Warn().Str("surface", surface).Msg("persist queue full; dropping learned entry")
		}
	}
	return base
}

// LemmatizeText rewrites each whitespace-separated token of text to its base
// form, leaving unrecognized tokens untouched. Edge punctuation is kept in
// place so "exclua," becomes "excluir,".
func (r *Resolver) LemmatizeText(ctx context.Context, text string) string {
	if text == "" {
		return text
	}
	fields := strings.Fields(text)
	for i, f := range fields {
		lead, core, trail := splitEdgePunct(f)
		if core == "" {
			continue
		}
		base, matched := r.Resolve(ctx, core)
		if matched {
			fields[i] = lead + base + trail
		}
	}
	return strings.Join(fields, " ")
}

// ActionVerbs lemmatizes every token of text and returns the base forms that
// belong to the curated action-verb set.
func (r *Resolver) ActionVerbs(ctx context.Context, text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.Fields(text) {
		_, core, _ := splitEdgePunct(f)
		if core == "" {
			continue
		}
		base, matched := r.Resolve(ctx, core)
		if matched && r.pack.IsBase(base) {
			out[base] = struct{}{}
		}
	}
	return out
}

// splitEdgePunct peels leading and trailing punctuation off a token so
// lookups see the bare word. Interior punctuation (emails, "e-mail") stays.
func splitEdgePunct(tok string) (lead, core, trail string) {
	start := 0
	for start < len(tok) && isEdgePunct(tok[start]) {
		start++
	}
	end := len(tok)
	for end > start && isEdgePunct(tok[end-1]) {
		end--
	}
	return tok[:start], tok[start:end], tok[end:]
}

func isEdgePunct(b byte) bool {
	switch b {
	case '.', ',', ';', ':', '!', '?', '"', '\'', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// Pack exposes the static tier for components that need the action-verb set.
func (r *Resolver) Pack() *Pack { return r.pack }

// Stats returns a snapshot of resolver counters.
func (r *Resolver) Stats() Stats {
	r.mu.RLock()
	learned := len(r.learned)
	r.mu.RUnlock()
	return Stats{
		StaticForms:  len(r.pack.Forms),
		StaticBases:  len(r.pack.Bases),
		LearnedForms: learned,
		MemoLen:      r.memo.Len(),
		StaticHits:   r.staticHits.Load(),
		LearnedHits:  r.learnedHits.Load(),
		FallbackHits: r.fallbackHits.Load(),
		Unmatched:    r.unmatched.Load(),
	}
}

func (r *Resolver) countTier(res Resolution) {
	switch res.Tier {
	case TierStatic:
		r.staticHits.Add(1)
	case TierLearned:
		r.learnedHits.Add(1)
	case TierFallback:
		r.fallbackHits.Add(1)
	default:
		r.unmatched.Add(1)
	}
}

// Close stops the persist goroutine and synchronously flushes pending
// learned entries, bounded by ctx.
func (r *Resolver) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
