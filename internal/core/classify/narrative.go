package classify

import "regexp"

// reNarrativeSubject matches a third-party subject immediately followed by a
// past-tense verb, the shape of reporting what someone else did ("hackers
// baixaram dados"). First and second person subjects never match, so direct
// commands and first-person requests pass through. This is a surface
// heuristic, not a parse; it runs on the normalized text because
// lemmatization would erase the tense signal.
var reNarrativeSubject = regexp.MustCompile(
	`\b(hackers?|criminosos|golpistas|ladroes|atacantes|invasores|eles|elas|alguem|` +
		`a empresa|as empresas|o banco|os bancos|o governo|o sistema)\s+` +
		`[a-z]+(aram|eram|iram|ou|eu|iu)\b`,
)

// Report framings that introduce third-party news rather than a request.
var reReportFraming = regexp.MustCompile(
	`\b(voce viu|voces viram|ficou sabendo|ficaram sabendo|soube que|ouvi dizer|dizem que)\b`,
)

// isNarrative reports whether the normalized text reads as third-party
// past-tense narration.
func isNarrative(normalized string) bool {
	return reNarrativeSubject.MatchString(normalized) ||
		reReportFraming.MatchString(normalized)
}
