// Package lemma resolves inflected Portuguese verb forms to their infinitive.
// Resolution is tiered: a static table compiled from the embedded verbs.json,
// a learned table populated at runtime, and an optional model-backed
// morphological analyzer as the slow fallback. The package fails open: a token
// that no tier recognizes is returned unchanged.
package lemma

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed verbs.json
var embedded []byte

type rawVerb struct {
	Base  string   `json:"base"`
	Forms []string `json:"forms"`
}

type rawPack struct {
	Version int      `json:"version"`
	Verbs   []rawVerb `json:"verbs"`
	// bases that are valid action verbs on their own but whose conjugations
	// map onto another base (e.g. "subir" -> "fazer upload")
	Aliases []string `json:"aliases"`
}

// Pack is the compiled static tier: an immutable surface-form lookup table
// plus the set of base forms the classifier treats as action verbs.
type Pack struct {
	Version int

	// Forms maps every known surface form (conjugation or infinitive,
	// lowercased, diacritics already stripped) to its base form.
	Forms map[string]string

	// Bases is the closed action-verb set used for intent checks.
	Bases map[string]struct{}
}

// Load compiles the embedded verbs.json into a Pack.
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("lemma: parse verbs.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("lemma: unsupported verbs.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version: rp.Version,
		Forms:   make(map[string]string, 512),
		Bases:   make(map[string]struct{}, len(rp.Verbs)),
	}
	for _, v := range rp.Verbs {
		base := strings.ToLower(strings.TrimSpace(v.Base))
		if base == "" {
			continue
		}
		p.Forms[base] = base
		p.Bases[base] = struct{}{}
		for _, f := range v.Forms {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" {
				continue
			}
			p.Forms[f] = base
		}
	}
	for _, a := range rp.Aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			p.Bases[a] = struct{}{}
		}
	}
	return p, nil
}

// IsBase reports whether s is a recognized action-verb base form.
func (p *Pack) IsBase(s string) bool {
	_, ok := p.Bases[s]
	return ok
}
