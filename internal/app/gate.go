package app

import "strings"

// Scope is the classification of an incoming question.
type Scope int

const (
	InScope Scope = iota
	OutOfScope
)

// defaultDenylist holds literal phrases for clearly non-educational
// questions. The list stays narrow on purpose: an off-topic question that
// slips through costs one backend call, a rejected study question costs a
// student their answer.
var defaultDenylist = []string{
	"clima hoje",
	"previsão do tempo",
	"temperatura agora",
	"notícias atuais",
	"notícias de hoje",
	"que horas são",
	"data de hoje",
	"como vai você",
	"fofoca",
	"celebridade",
}

// RedirectMessage is the fixed reply for out-of-scope questions. No
// retrieval or backend call is spent on them.
const RedirectMessage = `🎓 Como tutor educacional, foco em questões de aprendizado!

📚 POSSO ENSINAR:
• Matemática: álgebra, geometria, funções
• Física: cinemática, dinâmica, energia
• Química: estequiometria, soluções
• Métodos de resolução detalhados

🤔 Reformule para uma pergunta educacional!`

// ScopeGate is a heuristic substring classifier, not a model call.
type ScopeGate struct {
	denylist []string
}

func NewScopeGate(extraTerms []string) *ScopeGate {
	terms := make([]string, 0, len(defaultDenylist)+len(extraTerms))
	terms = append(terms, defaultDenylist...)
	for _, t := range extraTerms {
		if s := strings.ToLower(strings.TrimSpace(t)); s != "" {
			terms = append(terms, s)
		}
	}
	return &ScopeGate{denylist: terms}
}

func (g *ScopeGate) Classify(question string) Scope {
	q := strings.ToLower(question)
	for _, term := range g.denylist {
		if strings.Contains(q, term) {
			return OutOfScope
		}
	}
	return InScope
}
