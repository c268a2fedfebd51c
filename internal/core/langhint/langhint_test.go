package langhint

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		in   string
		want Lang
	}{
		{"Qual é a capital do Brasil?", LangPT},
		{"agendar reunião amanhã", LangPT},
		{"what is the capital of France?", LangEN},
		{"schedule a meeting tomorrow please", LangEN},
		// mixed leans Portuguese
		{"como fazer um meeting?", LangPT},
		// no signal at all defaults to Portuguese
		{"ok", LangPT},
		{"", LangPT},
	}
	for _, tc := range cases {
		if got := Detect(tc.in); got != tc.want {
			t.Fatalf("Detect(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLangValid(t *testing.T) {
	if !LangPT.Valid() || !LangEN.Valid() {
		t.Fatal("expected pt and en to be valid")
	}
	if Lang("fr").Valid() {
		t.Fatal("fr must not be valid")
	}
}
