package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name       string
		level      RiskLevel
		indicators []string
		official   bool
		expected   string
	}{
		{"safe ignores indicators", RiskSafe, []string{"urgente"}, true, safeExplanation},
		{
			"warning without indicators", RiskWarning, nil, false,
			"A mensagem contém alguns elementos suspeitos. Tenha cuidado e verifique sempre a fonte antes de fornecer qualquer informação.",
		},
		{
			"warning keeps first three", RiskWarning, []string{"urgente", "prémio", "ganhou", "sorteio"}, false,
			"A mensagem contém alguns elementos suspeitos: urgente, prémio, ganhou. Tenha cuidado e verifique sempre a fonte antes de fornecer qualquer informação.",
		},
		{
			"scam keeps first four and flags impersonation", RiskScam, []string{"urgente", "prémio", "ganhou", "sorteio", "iban"}, true,
			"🚨 ATENÇÃO: Esta mensagem tem várias características típicas de burla, incluindo: urgente, prémio, ganhou, sorteio. A mensagem parece imitar uma entidade oficial. NÃO forneça informações pessoais, não clique em links e não faça transferências.",
		},
		{
			"scam without indicators", RiskScam, nil, false,
			"🚨 ATENÇÃO: Esta mensagem tem várias características típicas de burla. NÃO forneça informações pessoais, não clique em links e não faça transferências.",
		},
		{"unknown level", RiskLevel("critical"), []string{"urgente"}, true, inconclusiveExplanation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Explain(tc.level, tc.indicators, tc.official))
		})
	}
}

func TestRiskLevelParsing(t *testing.T) {
	for _, s := range []string{"safe", "warning", "scam"} {
		level, err := ParseRiskLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, level.String())
	}
	_, err := ParseRiskLevel("SCAM")
	assert.Error(t, err)
	_, err = ParseRiskLevel("")
	assert.Error(t, err)

	assert.Less(t, RiskSafe.Severity(), RiskWarning.Severity())
	assert.Less(t, RiskWarning.Severity(), RiskScam.Severity())
	assert.Equal(t, -1, RiskLevel("unknown").Severity())
}

func TestResultMarshalsEmptyIndicators(t *testing.T) {
	data, err := json.Marshal(Result{Confidence: 20, RiskLevel: RiskSafe, Explanation: safeExplanation})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_scam":false,"confidence":20,"risk_level":"safe","explanation":"`+safeExplanation+`","indicators":[]}`, string(data))
}
