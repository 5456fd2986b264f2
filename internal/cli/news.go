package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/backend"
	"github.com/painelfin/painelgo/internal/display"
	"github.com/painelfin/painelgo/internal/scrape"
)

// newNewsCmd creates the market-news command group.
func newNewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Notícias do mercado",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			ticker, _ := cmd.Flags().GetString("ticker")

			if ticker != "" {
				articles, err := a.backend.News.ByTicker(cmd.Context(), ticker)
				if err != nil {
					return err
				}
				fmt.Println(display.Title("Notícias de " + ticker))
				fmt.Println(display.NewsTable(articles))
				return nil
			}

			articles, err := a.backend.News.Latest(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Últimas notícias"))
			fmt.Println(display.NewsTable(articles))
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Quantidade de notícias")
	cmd.Flags().String("ticker", "", "Filtra por ticker")

	cmd.AddCommand(&cobra.Command{
		Use:   "analyze [ID]",
		Short: "Gera análise de IA para uma notícia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID inválido: %s", args[0])
			}
			article, err := a.backend.News.Analyze(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(display.Title(article.Headline))
			if article.Analysis == nil {
				display.Info("Análise indisponível para esta notícia")
				return nil
			}
			fmt.Printf("Sentimento: %s\n", article.Analysis.Sentiment)
			fmt.Printf("Resumo: %s\n", article.Analysis.Summary)
			if len(article.Analysis.MentionedCompanies) > 0 {
				fmt.Printf("Empresas citadas: %v\n", article.Analysis.MentionedCompanies)
			}
			return nil
		},
	})

	return cmd
}

// newCompanyNewsCmd creates the curated company-news command group.
func newCompanyNewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company-news",
		Short: "Notícias curadas por empresa",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [TICKER]",
		Short: "Lista as notícias de um ticker acompanhado",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := ""
			if len(args) == 1 {
				ticker = args[0]
			}
			if ticker == "" {
				tickers, err := a.backend.CompanyNews.Tickers(cmd.Context())
				if err != nil {
					return err
				}
				ticker, err = promptSelect("Qual ticker?", tickers)
				if err != nil {
					return err
				}
			}
			items, err := a.backend.CompanyNews.List(cmd.Context(), ticker)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				display.Info("Nenhuma notícia cadastrada para " + ticker)
				return nil
			}
			fmt.Println(display.Title("Notícias de " + ticker))
			fmt.Println(display.CompanyNewsTable(items))
			return nil
		},
	})

	addCmd := &cobra.Command{
		Use:   "add [TICKER]",
		Short: "Cadastra uma notícia a partir de um link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := args[0]
			link, _ := cmd.Flags().GetString("url")
			if link == "" {
				var err error
				link, err = promptInput("Link da notícia:", "")
				if err != nil {
					return err
				}
			}

			// Prefill the form from the page's own metadata.
			payload := backend.CreateCompanyNews{Ticker: ticker, URL: link}
			if preview, err := scrape.NewScraper().Preview(link); err == nil {
				payload.Title = preview.Title
				payload.Summary = preview.Summary
				payload.Source = preview.Source
				payload.PublishedDate = preview.PublishedAt
			} else {
				display.Info("Não foi possível pré-preencher a partir do link: " + err.Error())
			}

			payload, err := promptCompanyNewsForm(payload)
			if err != nil {
				return err
			}

			item, err := a.backend.CompanyNews.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			display.Success(fmt.Sprintf("Notícia %d cadastrada para %s", item.ID, ticker))
			return nil
		},
	}
	addCmd.Flags().String("url", "", "Link da notícia")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "edit [ID]",
		Short: "Edita uma notícia cadastrada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID inválido: %s", args[0])
			}
			title, err := promptInput("Novo título (vazio mantém):", "")
			if err != nil {
				return err
			}
			summary, err := promptInput("Novo resumo (vazio mantém):", "")
			if err != nil {
				return err
			}
			item, err := a.backend.CompanyNews.Update(cmd.Context(), id, backend.UpdateCompanyNews{
				Title:   title,
				Summary: summary,
			})
			if err != nil {
				return err
			}
			display.Success(fmt.Sprintf("Notícia %d atualizada", item.ID))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [ID]",
		Short: "Remove uma notícia cadastrada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID inválido: %s", args[0])
			}
			if err := a.backend.CompanyNews.Remove(cmd.Context(), id); err != nil {
				return err
			}
			display.Success(fmt.Sprintf("Notícia %d removida", id))
			return nil
		},
	})

	return cmd
}
