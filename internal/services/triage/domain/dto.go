// Package domain holds DTOs and contracts for the triage service
package domain

import (
	"triage/internal/services/prompt"
)

// RequestContext carries per-request overrides from the caller.
type RequestContext struct {
	// Lang forces the reply language instead of detecting it.
	Lang string `json:"lang,omitempty" validate:"omitempty,oneof=pt en" example:"pt"`
	// Model overrides the default model.
	Model string `json:"model,omitempty" validate:"omitempty,min=1,max=64" example:"gpt-4o"`
	// Temperature caps the bucket temperature.
	Temperature float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2" example:"0.7"`
}

// PreprocessInput is the classification request body. Message may be blank;
// the service answers with an EMPTY_INPUT payload rather than a 4xx so chat
// frontends can relay the apology verbatim.
type PreprocessInput struct {
	Message string           `json:"message" validate:"omitempty,max=4096" example:"enviar email para joao@teste.com"`
	From    string           `json:"from,omitempty" validate:"omitempty,max=64" example:"5511999999999"`
	Ctx     RequestContext   `json:"ctx"`
	History []prompt.Message `json:"history,omitempty" validate:"omitempty,max=50,dive"`
}

// WebhookInput is the chat-gateway body: just a sender and a message.
type WebhookInput struct {
	From    string `json:"from" validate:"omitempty,max=64" example:"5511999999999"`
	Message string `json:"message" validate:"omitempty,max=4096" example:"agendar reunião amanhã"`
}

// Classification is the bucket decision with its evidence.
type Classification struct {
	Bucket  string   `json:"bucket" example:"system"`
	Reasons []string `json:"reasons"`
	Scope   []string `json:"scope"`
}

// Latencies records per-stage wall time in milliseconds.
type Latencies struct {
	ExtractionMS     float64 `json:"extraction_ms"`
	CacheLookupMS    float64 `json:"cache_lookup_ms"`
	NormalizationMS  float64 `json:"normalization_ms"`
	ClassificationMS float64 `json:"classification_ms"`
	PayloadMS        float64 `json:"payload_ms"`
	TotalMS          float64 `json:"total_ms"`
}

// PreprocessOutput is the full service response: the original and processed
// views of the text, the assembled model payload, the classification and the
// stage latencies. Error is set (and the rest mostly empty) only for blank
// input.
type PreprocessOutput struct {
	Message        string         `json:"message"`
	NormalizedText string         `json:"normalized_text,omitempty"`
	LemmatizedText string         `json:"lemmatized_text,omitempty"`
	Lang           string         `json:"lang,omitempty" example:"pt"`
	Error          string         `json:"error,omitempty" example:"EMPTY_INPUT"`
	OpenAIPayload  prompt.Payload `json:"openai_payload"`
	Classification Classification `json:"classification"`
	Performance    Latencies      `json:"performance"`
}

// WebhookInfo echoes the webhook envelope back to the gateway. EventID is
// minted per delivery so the gateway can dedupe retries.
type WebhookInfo struct {
	EventID    string `json:"event_id" example:"8f14e45f-ceea-4e17-a1f0-8f3c9e4a7b21"`
	From       string `json:"from" example:"5511999999999"`
	ReceivedAt int64  `json:"received_unix" example:"1725731200"`
}

// WebhookOutput wraps a preprocess result with webhook metadata.
type WebhookOutput struct {
	PreprocessOutput
	Webhook WebhookInfo `json:"webhook"`
}

// LemmaStats mirrors the resolver counters for the metrics endpoint.
type LemmaStats struct {
	StaticForms  int    `json:"static_forms"`
	StaticBases  int    `json:"static_bases"`
	LearnedForms int    `json:"learned_forms"`
	MemoLen      int    `json:"memo_len"`
	StaticHits   uint64 `json:"static_hits"`
	LearnedHits  uint64 `json:"learned_hits"`
	FallbackHits uint64 `json:"fallback_hits"`
	Unmatched    uint64 `json:"unmatched"`
}

// MetricsOutput is the service-level counter snapshot.
type MetricsOutput struct {
	TotalRequests       uint64     `json:"total_requests"`
	CacheHits           uint64     `json:"cache_hits"`
	CacheMisses         uint64     `json:"cache_misses"`
	CacheHitRatePercent float64    `json:"cache_hit_rate_percent"`
	CacheSize           int        `json:"cache_size"`
	AvgLatencyMS        float64    `json:"avg_latency_ms"`
	ErrorCount          uint64     `json:"error_count"`
	ErrorRatePercent    float64    `json:"error_rate_percent"`
	Lemma               LemmaStats `json:"lemma"`
	Timestamp           int64      `json:"timestamp" example:"1725731200"`
}
