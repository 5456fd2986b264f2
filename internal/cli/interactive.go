package cli

import (
	"fmt"
	"strings"

	"github.com/painelfin/painelgo/internal/display"
)

// Interactive menu entries, in display order.
const (
	menuQuotes      = "Cotações em tempo real"
	menuNews        = "Notícias do mercado"
	menuCompanyNews = "Notícias por empresa"
	menuCVM         = "Documentos CVM"
	menuMacro       = "Indicadores macro"
	menuPortfolio   = "Portfólio"
	menuGuide       = "Stock guide"
	menuNotes       = "Notas de pesquisa"
	menuChat        = "Assistente de IA"
	menuExit        = "Sair"
)

// runInteractiveMode drives the dashboard through a menu loop. Each choice
// reuses the same code path as the corresponding subcommand.
func runInteractiveMode(a *app) error {
	root := NewRootCmd()
	fmt.Println(display.Title("painelgo"))

	for {
		choice, err := promptSelect("O que você quer ver?", []string{
			menuQuotes, menuNews, menuCompanyNews, menuCVM, menuMacro,
			menuPortfolio, menuGuide, menuNotes, menuChat, menuExit,
		})
		if err != nil {
			// Ctrl+C inside the prompt ends the session.
			return nil
		}

		var args []string
		switch choice {
		case menuQuotes:
			tickers, err := promptInput("Tickers (separados por espaço):", "")
			if err != nil || tickers == "" {
				continue
			}
			args = append([]string{"quotes"}, splitFields(tickers)...)
		case menuNews:
			args = []string{"news"}
		case menuCompanyNews:
			args = []string{"company-news", "list"}
		case menuCVM:
			args = []string{"cvm", "docs"}
		case menuMacro:
			args = []string{"macro"}
		case menuPortfolio:
			args = []string{"portfolio"}
		case menuGuide:
			args = []string{"guide"}
		case menuNotes:
			args = []string{"notes"}
		case menuChat:
			args = []string{"chat"}
		case menuExit:
			return nil
		}

		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			display.Error(err)
		}
		fmt.Println()
	}
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
}
