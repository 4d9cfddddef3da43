// Command burlometro classifies a single message from the terminal with the same
// analyzer the HTTP service runs, or starts that service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"burlometro/internal/ai"
	"burlometro/internal/analysis"
	"burlometro/internal/app"
	"burlometro/internal/config"
	"burlometro/internal/scoring"
)

var (
	configPath string
	rulesOnly  bool
	jsonOutput bool

	colorRed    = color.New(color.FgRed, color.Bold)
	colorYellow = color.New(color.FgYellow, color.Bold)
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorCyan   = color.New(color.FgCyan)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "burlometro",
	Short:         "Deteção de burlas em mensagens de texto",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check [mensagem]",
	Short: "Analisa uma mensagem (argumentos ou stdin)",
	Long: `Analisa uma mensagem e mostra o veredicto.

Sem argumentos, a mensagem é lida do stdin:
  echo "URGENTE! Confirme os dados..." | burlometro check`,
	RunE: runCheck,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Arranca o serviço HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Log.Apply(); err != nil {
			return err
		}
		return app.Serve(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "ficheiro de configuração YAML")
	checkCmd.Flags().BoolVar(&rulesOnly, "rules-only", false, "não consultar o modelo, usar apenas as regras")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "imprimir o resultado em JSON")
	rootCmd.AddCommand(checkCmd, serveCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		message = string(data)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Log.Apply(); err != nil {
		return err
	}
	// keep the terminal for the verdict
	logrus.SetOutput(cmd.ErrOrStderr())

	scorer, err := scoring.NewScorer(cfg.Scoring)
	if err != nil {
		return err
	}

	var provider ai.Classifier
	if !rulesOnly && !cfg.DisableAI {
		client, err := ai.NewClient(cfg.AI())
		switch {
		case err == nil:
			provider = client
		case !errors.Is(err, ai.ErrDisabled):
			return err
		}
	}

	timeout := cfg.Provider.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	report, err := analysis.New(scorer, provider).AnalyzeDetailed(ctx, analysis.Request{Message: message})
	if errors.Is(err, analysis.ErrEmptyMessage) {
		return errors.New("Mensagem é obrigatória")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Result)
	}
	printReport(out, report)
	return nil
}

func printReport(w io.Writer, report analysis.Report) {
	result := report.Result
	levelColor := colorGreen
	label := "SEGURA"
	switch result.RiskLevel {
	case scoring.RiskScam:
		levelColor, label = colorRed, "BURLA"
	case scoring.RiskWarning:
		levelColor, label = colorYellow, "SUSPEITA"
	}

	levelColor.Fprintf(w, "%s (%d%% confiança)\n", label, result.Confidence)
	fmt.Fprintln(w, result.Explanation)
	if len(result.Indicators) > 0 {
		colorCyan.Fprintf(w, "Indicadores: %s\n", strings.Join(result.Indicators, ", "))
	}
	if len(report.URLHosts) > 0 {
		colorCyan.Fprintf(w, "Ligações: %s\n", strings.Join(report.URLHosts, ", "))
	}
	fmt.Fprintf(w, "Fonte: %s\n", report.Source)
}
