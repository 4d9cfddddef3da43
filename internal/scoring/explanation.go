package scoring

import "strings"

const (
	safeExplanation         = "A mensagem parece ser legítima. Não foram encontrados indicadores significativos de burla."
	warningPrefix           = "A mensagem contém alguns elementos suspeitos"
	warningSuffix           = "Tenha cuidado e verifique sempre a fonte antes de fornecer qualquer informação."
	scamPrefix              = "🚨 ATENÇÃO: Esta mensagem tem várias características típicas de burla"
	scamImpersonation       = ". A mensagem parece imitar uma entidade oficial"
	scamSuffix              = ". NÃO forneça informações pessoais, não clique em links e não faça transferências."
	inconclusiveExplanation = "Análise inconclusiva."
)

// Explain builds the Portuguese explanation shown alongside a verdict.
func Explain(level RiskLevel, indicators []string, mentionsOfficial bool) string {
	switch level {
	case RiskSafe:
		return safeExplanation
	case RiskWarning:
		var b strings.Builder
		b.WriteString(warningPrefix)
		if len(indicators) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(firstN(indicators, 3), ", "))
		}
		b.WriteString(". ")
		b.WriteString(warningSuffix)
		return b.String()
	case RiskScam:
		var b strings.Builder
		b.WriteString(scamPrefix)
		if len(indicators) > 0 {
			b.WriteString(", incluindo: ")
			b.WriteString(strings.Join(firstN(indicators, 4), ", "))
		}
		if mentionsOfficial {
			b.WriteString(scamImpersonation)
		}
		b.WriteString(scamSuffix)
		return b.String()
	default:
		return inconclusiveExplanation
	}
}

func firstN(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
