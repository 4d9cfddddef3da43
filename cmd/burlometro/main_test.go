package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burlometro/internal/analysis"
	"burlometro/internal/scoring"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		rulesOnly, jsonOutput, configPath = false, false, ""
	})
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckJSONFromArgs(t *testing.T) {
	out, err := runRoot(t, "", "check", "--rules-only", "--json",
		"URGENTE!", "Confirme os dados em http://fake-bank.example/verify", "antes que seja suspensa.", "Código: 123456")
	require.NoError(t, err)

	var result scoring.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, scoring.RiskScam, result.RiskLevel)
	assert.Equal(t, 95, result.Confidence)
}

func TestCheckReadsStdin(t *testing.T) {
	out, err := runRoot(t, "Olá, tudo bem? Vamos almoçar amanhã?\n", "check", "--rules-only")
	require.NoError(t, err)
	assert.Contains(t, out, "SEGURA (20% confiança)")
	assert.Contains(t, out, "Fonte: rules")
}

func TestCheckRejectsBlankInput(t *testing.T) {
	_, err := runRoot(t, "   \n", "check", "--rules-only")
	assert.EqualError(t, err, "Mensagem é obrigatória")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, analysis.Report{
		Result: scoring.Result{
			RiskLevel:   scoring.RiskWarning,
			Confidence:  55,
			Explanation: "Cuidado.",
			Indicators:  []string{"clique aqui"},
		},
		Source:   analysis.SourceProvider,
		URLHosts: []string{"bit.ly"},
	})
	out := buf.String()
	assert.Contains(t, out, "SUSPEITA (55% confiança)")
	assert.Contains(t, out, "Indicadores: clique aqui")
	assert.Contains(t, out, "Ligações: bit.ly")
	assert.Contains(t, out, "Fonte: provider")
}
