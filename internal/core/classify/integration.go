package classify

import (
	"sort"
	"strings"
)

// Objects that make an action verb an integration request on their own.
// Checked against the lemmatized text, so only base verb forms appear here.
var integrationObjects = []string{
	// email specifics
	"gmail", "destinatario", "assunto",
	// documents and files ("document" also covers "documento")
	"document", "planilha", "sheet", "excel", "slide",
	"apresentacao", "arquivo", "pdf", "rascunho",
	"google docs", "google drive", "drive",
	// calendar
	"reuniao", "meeting", "compromisso", "evento", "agenda", "calendario",
	// billing
	"boleto", "pagamento", "cobranca", "fatura", "pix",
	// storage
	"backup", "upload", "download", "sincronizar",
	// contacts and notes
	"contatos", "contacts", "nota",
}

// Destination markers that make a bare "email" mention a send request.
var emailDestinationMarkers = []string{
	"para", "pro", "@", "ao", ".com", "agora", "automatica",
	"um email", "um e-mail", "uma mensagem",
}

// Phrases that mean the user is asking about a capability, not invoking it.
var exclusionPhrases = []string{
	// capability questions
	"o que vc pode fazer", "o que voce pode fazer", "o que pode fazer",
	"quais funcoes", "quais funcionalidades",
	// generic help
	"me ajude", "me ajuda", " help ", " ajuda ",
	// greetings, padded to avoid substring hits inside longer words
	" oi ", " ola ", " oie ", " opa ",
	// actions on concepts rather than tools
	"melhorar meu email",
	"organizar meus documentos", "organizar minhas", "organizar meu",
	// date and time questions
	"qual a data", "que data", "data de hoje", "data hoje",
	"agendar meu tempo", "agendar tempo",
	// meta questions
	"o que fazer", "como fazer", "que fazer",
	// learning questions
	"como usar", "tutorial", "aprender", "estudar", "entender sobre",
	"dicas de", "como nomear", "como organizar", "boas praticas",
	"otimizar meu", "configurar",
}

// integrationIntent decides whether the message is an actionable request on
// an external integration. It needs an action verb plus either a specific
// object, an independently detected scope, or an email-with-destination
// shape, and none of the exclusion phrases.
func integrationIntent(in Input) ([]string, bool) {
	if len(in.ActionVerbs) == 0 {
		return nil, false
	}

	padded := " " + in.Lemmatized + " "
	for _, exc := range exclusionPhrases {
		if strings.Contains(padded, exc) {
			return nil, false
		}
	}

	var objects []string
	for _, obj := range integrationObjects {
		if strings.Contains(in.Lemmatized, obj) {
			objects = append(objects, obj)
		}
	}

	emailSend := hasEmailSendPattern(in.Lemmatized)
	if len(objects) == 0 && len(in.Scopes) == 0 && !emailSend {
		return nil, false
	}

	keywords := sortedVerbs(in.ActionVerbs)
	keywords = append(keywords, objects...)
	if emailSend && !strings.Contains(strings.Join(objects, " "), "email") {
		keywords = append(keywords, "email")
	}
	return keywords, true
}

// hasEmailSendPattern reports a "send an email somewhere" shape: an email
// mention plus a destination marker.
func hasEmailSendPattern(text string) bool {
	if !strings.Contains(text, "email") && !strings.Contains(text, "e-mail") {
		return false
	}
	for _, m := range emailDestinationMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func sortedVerbs(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
