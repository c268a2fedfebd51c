// Package scopes maps normalized, lemmatized message text to the set of
// external-integration scopes the message implies. Detection is pure string
// work over precompiled tables, so it is deterministic and allocation-light.
package scopes

import "strings"

// Scope identifiers. The Google ones are the OAuth URIs the downstream
// integration layer expects verbatim; billing is an internal marker.
const (
	Gmail        = "https://mail.google.com/"
	Calendar     = "https://www.googleapis.com/auth/calendar"
	Spreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	Drive        = "https://www.googleapis.com/auth/drive"
	Documents    = "https://www.googleapis.com/auth/documents"
	Billing      = "boleto"
)

// pattern is one exact-phrase fast-path entry. Phrases are checked in order
// before any keyword rule runs; each entry must agree with what the keyword
// rules would produce, it only short-circuits the work.
type pattern struct {
	phrase string
	scopes []string
}

var exactPhrases = []pattern{
	{"enviar email", []string{Gmail}},
	{"mandar email", []string{Gmail}},
	{"responder email", []string{Gmail}},
	{"agendar reuniao", []string{Calendar}},
	{"marcar reuniao", []string{Calendar}},
	{"criar evento", []string{Calendar}},
	{"criar planilha", []string{Spreadsheets, Drive}},
	{"criar documento", []string{Drive, Documents}},
}

// Action verbs in base form. Input text is lemmatized before detection, so
// imperative and past-tense surface forms have already collapsed onto these.
var (
	emailActions = []string{
		"enviar", "mandar", "escrever", "responder", "encaminhar",
		"send", "reply", "forward",
	}
	emailWords = []string{"gmail", "email", "e-mail"}

	calendarActions = []string{
		"agendar", "marcar", "criar evento", "adicionar evento",
		"schedule", "book",
	}
	calendarWords = []string{
		"calendar", "agenda", "evento", "reuniao", "meeting",
		"aula", "sala", "hoje", "amanha", "hr", ":",
		"segunda", "terca", "quarta", "quinta", "sexta",
		"sabado", "domingo",
	}

	multiIntentMarkers = []string{"e depois", "tambem", "alem disso", "and then", "also"}

	sheetsWords  = []string{"sheet", "planilha", "tabela", "spreadsheet"}
	docsWords    = []string{"documento", "document", "doc", "arquivo", "file", "pdf"}
	billingWords = []string{"boleto", "fatura", "cobranca"}
)

// Detect returns the scopes implied by text, most specific first. Text must
// already be normalized and lemmatized; Detect never returns duplicates and
// the order is stable for a given input.
func Detect(text string) []string {
	for _, p := range exactPhrases {
		if strings.Contains(text, p.phrase) {
			out := make([]string, len(p.scopes))
			copy(out, p.scopes)
			return out
		}
	}

	hasEmailAction := containsAny(text, emailActions)
	hasEmailWord := containsAny(text, emailWords)
	hasCalendarAction := containsAny(text, calendarActions)
	hasCalendarWord := containsAny(text, calendarWords)
	hasMultiIntent := containsAny(text, multiIntentMarkers)

	// explicit email + calendar with a connector: both scopes
	if hasEmailAction && hasEmailWord && (hasCalendarAction || hasCalendarWord) && hasMultiIntent {
		return []string{Gmail, Calendar}
	}

	// unambiguous email intent wins over incidental calendar words
	if hasEmailAction && hasEmailWord {
		return []string{Gmail}
	}

	// unambiguous calendar intent
	if hasCalendarAction && (hasCalendarWord || strings.Contains(text, "compromisso")) {
		return []string{Calendar}
	}

	var out []string
	if containsAny(text, []string{"calendar", "agenda", "evento"}) {
		out = append(out, Calendar)
	} else if strings.Contains(text, "compromisso") && !hasEmailAction {
		out = append(out, Calendar)
	}

	// spreadsheets imply drive access; stop here so the generic drive and
	// document rules below cannot double up
	if containsAny(text, sheetsWords) {
		return append(out, Spreadsheets, Drive)
	}

	// same shape for documents
	if containsAny(text, docsWords) {
		return append(out, Drive, Documents)
	}

	if hasEmailWord {
		out = append(out, Gmail)
	}
	if strings.Contains(text, "drive") {
		out = append(out, Drive)
	}
	if containsAny(text, billingWords) {
		out = append(out, Billing)
	}
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
