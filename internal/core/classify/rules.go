package classify

import (
	"regexp"
	"strings"
)

var (
	reFactualQuestion = regexp.MustCompile(
		`\b(que dia e hoje|data de hoje|quem descobriu|capital de|definicao de|quanto e|resultado de)\b`,
	)
	rePersonalReference = regexp.MustCompile(
		`(?i)\b(meu|minha|minhas|meus|eu|para mim|no meu caso)\b`,
	)
	rePlanStrategy = regexp.MustCompile(
		`(?i)\b(plano|passo a passo|organizar|estrategia|estratégia|roteiro|curriculo|currículo|proposta|estudo)\b`,
	)
	reSentenceBreak = regexp.MustCompile(`[.?!;]`)
)

// Short requests containing these read as simple tasks, not personalization.
var simpleTaskPhrases = []string{
	"plano de", "minhas ideias", "uma estrategia", "meus documentos",
	"preparar uma", "melhorar meu email",
	"criar um roteiro", "organizar pensamentos", "organizar prioridades",
	"criar um metodo", "otimizar meu",
}

var personalizationPhrases = []string{
	"estou me sentindo", "queria entender melhor",
	"preciso de conselhos", "preciso de ajuda para",
	"gostaria de aprender", "com dificuldade",
	"sobrecarregado", "crescer profissionalmente",
	"estou buscando maneiras", "quero desenvolver",
	"procuro formas",
	"preciso repensar", "gostaria de feedback",
	"gostaria de melhorar",
}

// isDirectQuestion: short text ending in a question mark, or a factual
// question template.
func isDirectQuestion(original, normalized string) bool {
	if len(original) <= directQuestionMaxLen && strings.HasSuffix(original, "?") {
		return true
	}
	return reFactualQuestion.MatchString(normalized)
}

// isComplexOrPersonal: the message needs personalization or carries enough
// structure that a canned short answer will not do.
func isComplexOrPersonal(original, normalized string) bool {
	// short task-like requests mentioning plans or ideas are simple work
	if len(original) < simpleTaskMaxLen {
		for _, p := range simpleTaskPhrases {
			if strings.Contains(normalized, p) {
				return false
			}
		}
	}

	if len(original) > complexMinLen {
		return true
	}
	if rePersonalReference.MatchString(original) {
		return true
	}
	if rePlanStrategy.MatchString(original) {
		return true
	}
	if len(reSentenceBreak.FindAllString(original, -1)) > 1 {
		return true
	}
	for _, p := range personalizationPhrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return hasPersonalImprovement(normalized)
}

// hasPersonalImprovement: "melhorar" in a personal or workplace context is a
// coaching request, not a tool action.
func hasPersonalImprovement(normalized string) bool {
	if strings.Contains(normalized, "melhorar minha comunicacao") {
		return true
	}
	if !strings.Contains(normalized, "melhorar") {
		return false
	}
	for _, ctx := range []string{"relacionamento", "desempenho", "no trabalho"} {
		if strings.Contains(normalized, ctx) {
			return true
		}
	}
	return false
}
