// Package prompt assembles the chat-completion payload sent downstream once a
// message has been classified. Model, sampling temperature and token budget
// follow the bucket; the system prompts follow bucket and language.
package prompt

import (
	"strings"

	"triage/internal/core/classify"
	"triage/internal/core/langhint"
)

// Defaults for payload construction
const (
	DefaultModel      = "gpt-4o"
	DefaultTemp       = 1.0
	historyWindow     = 3
	messagesMaxTokens = 800
	systemMaxTokens   = 1200
	userMaxTokens     = 2000
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the completed request body for the model call.
type Payload struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Request carries everything Build needs.
type Request struct {
	Bucket   classify.Bucket
	Lang     langhint.Lang
	Original string
	Scopes   []string
	History  []Message

	// Model overrides the default when set.
	Model string
	// Temperature caps the bucket temperature when > 0.
	Temperature float64
}

// Build assembles the payload: system prompts, then the last few history
// turns, then the user message.
func Build(req Request) Payload {
	msgs := systemPrompts(req.Bucket, req.Lang, req.Scopes)
	msgs = append(msgs, trimHistory(req.History)...)
	msgs = append(msgs, Message{Role: "user", Content: req.Original})

	temp, maxTokens := params(req.Bucket, req.Temperature)
	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	return Payload{
		Model:       model,
		Messages:    msgs,
		Temperature: temp,
		MaxTokens:   maxTokens,
	}
}

// EmptyInput is the canned payload returned when the message is blank.
func EmptyInput() Payload {
	return Payload{
		Messages: []Message{{
			Role:    "assistant",
			Content: "Não recebi sua mensagem. Pode reenviar, por favor?",
		}},
	}
}

func systemPrompts(bucket classify.Bucket, lang langhint.Lang, scopes []string) []Message {
	langPrompt := promptLangPT
	if lang == langhint.LangEN {
		langPrompt = promptLangEN
	}
	msgs := []Message{{Role: "system", Content: langPrompt}}

	if bucket == classify.BucketSystem {
		scopeList := strings.Join(scopes, ", ")
		if scopeList == "" {
			scopeList = "nenhuma"
		}
		msgs = append(msgs, Message{
			Role:    "system",
			Content: strings.Replace(promptSystemBucket, "{scopes}", scopeList, 1),
		})
		return msgs
	}

	msgs = append(msgs, Message{Role: "system", Content: promptConversational})
	switch bucket {
	case classify.BucketUser:
		msgs = append(msgs, Message{Role: "system", Content: promptUserBucket})
	case classify.BucketMessages:
		msgs = append(msgs, Message{Role: "system", Content: promptMessagesBucket})
	}
	return msgs
}

// params returns temperature and token budget for a bucket. The request
// temperature only ever lowers the bucket ceiling.
func params(bucket classify.Bucket, reqTemp float64) (float64, int) {
	base := reqTemp
	if base <= 0 {
		base = DefaultTemp
	}
	switch bucket {
	case classify.BucketMessages:
		return min(base, 1.0), messagesMaxTokens
	case classify.BucketSystem:
		return min(base, 0.7), systemMaxTokens
	default:
		return min(base, 1.0), userMaxTokens
	}
}

func trimHistory(history []Message) []Message {
	valid := history[:0:0]
	for _, m := range history {
		if m.Role != "" && m.Content != "" {
			valid = append(valid, m)
		}
	}
	if len(valid) > historyWindow {
		valid = valid[len(valid)-historyWindow:]
	}
	return valid
}
