// Package classify buckets a normalized, lemmatized message into one of three
// behavioral categories via priority-ordered heuristics. The decision is a
// pure function of its input; all caching lives with the caller.
package classify

import (
	"fmt"
	"strings"
)

// Bucket is the behavioral category of a message.
type Bucket string

// Buckets, in rule-priority order
const (
	// BucketSystem is an actionable request on an external integration.
	BucketSystem Bucket = "system"
	// BucketMessages is a short, closed, direct exchange.
	BucketMessages Bucket = "messages"
	// BucketUser needs personalization or extended context.
	BucketUser Bucket = "user"
)

// Input carries the views of one message the rules operate on. Original is
// the raw text (length and punctuation checks), Normalized is lowercased and
// diacritic-free, Lemmatized additionally has verbs in base form.
type Input struct {
	Original   string
	Normalized string
	Lemmatized string

	// ActionVerbs are the curated action-verb bases found after
	// lemmatization.
	ActionVerbs map[string]struct{}

	// Scopes is the scope detector's output for the lemmatized text.
	Scopes []string
}

// Result is the classification outcome. Reasons are ordered, human-readable
// and in the product language.
type Result struct {
	Bucket  Bucket   `json:"bucket"`
	Reasons []string `json:"reasons"`
	Scopes  []string `json:"scope"`
}

// Thresholds for the length-based rules
const (
	directQuestionMaxLen = 80
	complexMinLen        = 100
	shortFallbackMaxLen  = 60
	simpleTaskMaxLen     = 80
)

// Classify applies the rules in priority order and always returns a bucket.
func Classify(in Input) Result {
	// third-party past-tense narration is never a command, regardless of
	// which action verbs it mentions
	if isNarrative(in.Normalized) {
		return Result{
			Bucket:  BucketUser,
			Reasons: []string{"Relato sobre terceiros, sem comando direto."},
			Scopes:  in.Scopes,
		}
	}

	if keywords, ok := integrationIntent(in); ok {
		if len(in.Scopes) == 0 {
			// a system request that implies no integration scope is not
			// actionable; fall back to the length rule and say so
			res := byLength(in.Original)
			res.Reasons = append(
				[]string{"Reclassificada: intencao de integracao sem escopo detectado."},
				res.Reasons...,
			)
			res.Scopes = in.Scopes
			return res
		}
		return Result{
			Bucket:  BucketSystem,
			Reasons: []string{systemReason(keywords)},
			Scopes:  in.Scopes,
		}
	}

	if isDirectQuestion(in.Original, in.Normalized) {
		return Result{
			Bucket:  BucketMessages,
			Reasons: []string{"Pergunta direta/fechada detectada."},
			Scopes:  in.Scopes,
		}
	}

	if isComplexOrPersonal(in.Original, in.Normalized) {
		return Result{
			Bucket:  BucketUser,
			Reasons: []string{"Mensagem com necessidade de personalizacao/contexto."},
			Scopes:  in.Scopes,
		}
	}

	res := byLength(in.Original)
	res.Scopes = in.Scopes
	return res
}

func byLength(original string) Result {
	if len(original) < shortFallbackMaxLen {
		return Result{
			Bucket:  BucketMessages,
			Reasons: []string{"Curta e objetiva; sem necessidade clara de contexto."},
		}
	}
	return Result{
		Bucket:  BucketUser,
		Reasons: []string{"Mensagem requer elaboracao moderada."},
	}
}

func systemReason(keywords []string) string {
	if len(keywords) > 6 {
		keywords = keywords[:6]
	}
	return fmt.Sprintf("Palavras-chave de sistemas/APIs: %s", strings.Join(keywords, ", "))
}
