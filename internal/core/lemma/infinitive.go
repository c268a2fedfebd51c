package lemma

import "strings"

// suffixRule rewrites a regular conjugation ending to the infinitive ending.
// Rules are ordered longest-first so the most specific ending wins.
type suffixRule struct {
	from, to string
}

// Regular Portuguese conjugation endings. This intentionally only covers
// regular verbs; irregular forms belong in verbs.json or the learned table.
var suffixRules = []suffixRule{
	// gerund
	{"ando", "ar"}, {"endo", "er"}, {"indo", "ir"},
	// participle (masc/fem)
	{"ado", "ar"}, {"ada", "ar"}, {"ido", "ir"}, {"ida", "ir"},
	// preterite third plural
	{"aram", "ar"}, {"eram", "er"}, {"iram", "ir"},
	// preterite first/third singular
	{"ei", "ar"}, {"ou", "ar"}, {"eu", "er"}, {"iu", "ir"},
	// present/imperative singular
	{"e", "ar"}, {"a", "ar"},
}

// Infinitive derives the infinitive of a regular verb surface form. Tokens
// already ending in an infinitive suffix are returned unchanged; tokens no
// rule covers come back as-is (callers decide whether that is acceptable).
func Infinitive(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return token
	}
	if strings.HasSuffix(t, "ar") || strings.HasSuffix(t, "er") || strings.HasSuffix(t, "ir") {
		return t
	}
	for _, r := range suffixRules {
		if strings.HasSuffix(t, r.from) && len(t) > len(r.from)+1 {
			return t[:len(t)-len(r.from)] + r.to
		}
	}
	return t
}
