package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/display"
	"github.com/painelfin/painelgo/internal/models"
)

// newPortfolioCmd creates the portfolio command group. Every subcommand works
// on the configured default portfolio unless --id is given.
func newPortfolioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfólio acompanhado",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.backend.Portfolio.Summary(cmd.Context(), portfolioID(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(display.Title(summary.Name))
			fmt.Println(display.HoldingsTable(summary.Holdings))
			fmt.Printf("\nValor total: %s  Custo: %s  Resultado: %s (%s%%)\n",
				summary.TotalValue.StringFixed(2),
				summary.TotalCost.StringFixed(2),
				summary.TotalGain.StringFixed(2),
				summary.TotalGainPercent.StringFixed(2))
			return nil
		},
	}
	cmd.PersistentFlags().Int64("id", 0, "ID do portfólio (padrão: configurado)")

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Histórico diário do valor do portfólio",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := a.backend.Portfolio.DailyValues(cmd.Context(), portfolioID(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Histórico"))
			for _, v := range values {
				fmt.Printf("%s  %14s\n", v.Date, v.Value.StringFixed(2))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "contribution",
		Short: "Contribuição de cada ativo no dia",
		RunE: func(cmd *cobra.Command, args []string) error {
			contribs, err := a.backend.Portfolio.DailyContribution(cmd.Context(), portfolioID(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Contribuição diária"))
			for _, c := range contribs {
				fmt.Printf("%-8s %10s\n", c.Symbol, c.Contribution.StringFixed(2))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "suggested",
		Short: "Carteira sugerida pelo sell side",
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := a.backend.Portfolio.SuggestedPortfolio(cmd.Context(), portfolioID(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Carteira sugerida"))
			for _, s := range assets {
				fmt.Printf("%-8s %6s%%\n", s.Symbol, s.Weight.StringFixed(2))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sectors",
		Short: "Pesos por setor versus o benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := a.backend.Portfolio.SectorWeights(cmd.Context(), portfolioID(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Pesos por setor"))
			for _, w := range weights {
				diff := w.Weight.Sub(w.Benchmark)
				ow := "OW"
				if diff.IsNegative() {
					ow = "UW"
				}
				fmt.Printf("%-24s %6s%%  (benchmark %6s%%, %s %s)\n",
					w.Sector, w.Weight.StringFixed(2), w.Benchmark.StringFixed(2),
					ow, diff.Abs().StringFixed(2))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ibov",
		Short: "Histórico do Ibovespa",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := a.backend.Portfolio.IbovHistory(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Ibovespa"))
			for _, p := range points {
				fmt.Printf("%s  %12s\n", p.Date, p.Close.StringFixed(0))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "snapshot",
		Short: "Salva o snapshot do dia no backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.backend.Portfolio.SaveSnapshot(cmd.Context(), portfolioID(cmd, a)); err != nil {
				return err
			}
			display.Success("Snapshot salvo")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-positions [ARQUIVO]",
		Short: "Atualiza as posições a partir de um arquivo JSON",
		Long: `Substitui as posições do portfólio pelo conteúdo do arquivo, um array de
objetos {"symbol", "quantity", "avg_price"}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("falha ao ler %s: %w", args[0], err)
			}
			var positions []models.Position
			if err := json.Unmarshal(data, &positions); err != nil {
				return fmt.Errorf("arquivo de posições inválido: %w", err)
			}
			if err := a.backend.Portfolio.UpsertPositions(cmd.Context(), portfolioID(cmd, a), positions); err != nil {
				return err
			}
			display.Success(fmt.Sprintf("%d posições salvas", len(positions)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-metrics [ARQUIVO]",
		Short: "Envia métricas diárias a partir de um arquivo JSON",
		Long: `Envia métricas diárias digitadas manualmente, um array de objetos
{"id", "value"}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("falha ao ler %s: %w", args[0], err)
			}
			var metrics []models.DailyMetric
			if err := json.Unmarshal(data, &metrics); err != nil {
				return fmt.Errorf("arquivo de métricas inválido: %w", err)
			}
			if err := a.backend.Portfolio.UpdateDailyMetrics(cmd.Context(), portfolioID(cmd, a), metrics); err != nil {
				return err
			}
			display.Success(fmt.Sprintf("%d métricas enviadas", len(metrics)))
			return nil
		},
	})

	return cmd
}

func portfolioID(cmd *cobra.Command, a *app) int64 {
	if id, err := cmd.Flags().GetInt64("id"); err == nil && id > 0 {
		return id
	}
	return a.cfg.DefaultPortfolioID
}
