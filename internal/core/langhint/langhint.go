// Package langhint provides a lightweight surface heuristic for guessing the
// language of a chat message. It only distinguishes Portuguese from English;
// anything ambiguous defaults to Portuguese, which is the service's primary
// audience.
package langhint

import "regexp"

// Lang is a BCP-47 style language tag restricted to the two supported values.
type Lang string

// Supported language tags
const (
	LangPT Lang = "pt"
	LangEN Lang = "en"
)

// Valid reports whether l is one of the supported tags.
func (l Lang) Valid() bool { return l == LangPT || l == LangEN }

var (
	// runes that essentially only occur in Portuguese text
	rePTMarks = regexp.MustCompile(`[ãõçáéíóúàâêô]`)
	rePTWords = regexp.MustCompile(`(?i)\b(que|como|quando|onde|reuniao|reunião|calendario|calendário|para|você|voce)\b`)
	reENWords = regexp.MustCompile(`(?i)\b(what|how|when|where|meeting|calendar|the|please)\b`)
)

// Detect returns the best-effort language of s. English wins only when an
// English indicator is present and no Portuguese signal is; every other case
// resolves to Portuguese.
func Detect(s string) Lang {
	hasPT := rePTMarks.MatchString(s) || rePTWords.MatchString(s)
	hasEN := reENWords.MatchString(s)
	if hasEN && !hasPT {
		return LangEN
	}
	return LangPT
}
