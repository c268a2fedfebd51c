package lemma

import "context"

// AnalyzerResult is the morphological analyzer's answer for a single token.
type AnalyzerResult struct {
	IsVerb   bool
	BaseForm string
}

// Analyzer is the slow fallback tier: a part-of-speech / lemmatization
// capability, typically model backed. Implementations may take orders of
// magnitude longer than the table tiers and may be unavailable; callers must
// treat any error as "not a verb".
type Analyzer interface {
	Analyze(ctx context.Context, token string) (AnalyzerResult, error)
}

// NoopAnalyzer is the always-unmatched variant used when no model is
// configured. The resolver degrades gracefully to dictionary-only mode.
type NoopAnalyzer struct{}

// Analyze reports every token as not a verb.
func (NoopAnalyzer) Analyze(context.Context, string) (AnalyzerResult, error) {
	return AnalyzerResult{}, nil
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, token string) (AnalyzerResult, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, token string) (AnalyzerResult, error) {
	return f(ctx, token)
}
