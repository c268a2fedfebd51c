// Package normalize provides the deterministic text normalizer used by the
// classification pipeline.
// Pipeline order
// 1 control-char sanitize and UTF-8 repair drop invalid bytes
// 2 Unicode NFD decomposition
// 3 Case folding
// 4 Remove combining marks (strips diacritics: "reunião" -> "reuniao")
// 5 Remove zero-width and format chars ZWJ ZWNJ FEFF etc
// 6 Width fold fullwidth to ASCII
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultMemoSize bounds the raw-text memoization cache.
const DefaultMemoSize = 512

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalizer folds case and strips diacritics. The returned value for a given
// input never varies; the bounded LRU memo keyed by the raw input only skips
// recomputation, it never changes the output.
type Normalizer struct {
	memo *lru.Cache[string, string]
}

// New constructs a Normalizer with the given memo capacity.
// size <= 0 uses DefaultMemoSize.
func New(size int) *Normalizer {
	if size <= 0 {
		size = DefaultMemoSize
	}
	memo, _ := lru.New[string, string](size)
	return &Normalizer{memo: memo}
}

// Normalize returns the normalized form of s following the pipeline above.
// It never fails; empty input yields the empty string.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := n.memo.Get(s); ok {
		return v
	}
	out := normalizeSlow(s)
	n.memo.Add(s, out)
	return out
}

// MemoLen reports how many raw inputs are currently memoized.
func (n *Normalizer) MemoLen() int { return n.memo.Len() }

func normalizeSlow(s string) string {
	s = Sanitize(s)

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform chains over valid UTF-8 do not fail in practice;
		// fall back to lowercase rather than erroring
		ns = strings.ToLower(s)
	}

	// 7 collapse whitespace and trim
	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
// the edges. Chat messages are single logical lines, so newlines fold into
// spaces too.
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
