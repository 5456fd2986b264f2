package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/chat"
	"github.com/painelfin/painelgo/internal/display"
)

// newChatCmd creates the assistant command. It loads a quote snapshot and the
// portfolio summary as context before the conversation starts.
func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Assistente de IA sobre o mercado e o portfólio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			assistant, err := chat.NewAssistant(ctx, a.cfg)
			if errors.Is(err, chat.ErrDisabled) {
				display.Info(err.Error())
				return nil
			}
			if err != nil {
				return err
			}

			if summary, err := a.backend.Portfolio.Summary(ctx, a.cfg.DefaultPortfolioID); err == nil {
				var b strings.Builder
				for _, h := range summary.Holdings {
					fmt.Fprintf(&b, "%s: %s ações a %s, resultado %s%%\n",
						h.Symbol, h.Quantity.String(), h.CurrentPrice.StringFixed(2),
						h.GainPercent.StringFixed(2))
				}
				assistant.AddContext("portfólio "+summary.Name, b.String())
			}
			if indicators, err := a.backend.Macro.Indicators(ctx); err == nil {
				var b strings.Builder
				for key, ind := range indicators {
					if ind.Value != nil {
						fmt.Fprintf(&b, "%s: %.2f%s\n", key, *ind.Value, ind.Unit)
					}
				}
				assistant.AddContext("indicadores", b.String())
			}

			display.Info("Assistente pronto. Digite sua pergunta ('sair' encerra).")
			for {
				question, err := promptInput("Você:", "")
				if err != nil {
					return nil
				}
				question = strings.TrimSpace(question)
				if question == "" {
					continue
				}
				if strings.EqualFold(question, "sair") || strings.EqualFold(question, "exit") {
					return nil
				}
				answer, err := assistant.Ask(ctx, question)
				if err != nil {
					display.Error(err)
					continue
				}
				fmt.Println()
				fmt.Println(answer)
				fmt.Println()
			}
		},
	}
}
