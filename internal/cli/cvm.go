package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/backend"
	"github.com/painelfin/painelgo/internal/display"
	"github.com/painelfin/painelgo/internal/validate"
)

// newCVMCmd creates the CVM filings command group.
func newCVMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cvm",
		Short: "Documentos regulatórios da CVM",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "companies",
		Short: "Lista as empresas disponíveis",
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := a.backend.CVM.Companies(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Empresas"))
			for _, c := range companies {
				fmt.Printf("%6d  %-8s %s\n", c.ID, c.Ticker, c.CompanyName)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "Lista as categorias de documento",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := a.backend.CVM.DocumentTypes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Categorias"))
			for _, t := range types {
				fmt.Printf("%-20s %s\n", t.Code, t.Description)
			}
			return nil
		},
	})

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Lista documentos, com filtros opcionais",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := backend.DocumentFilter{}

			if company, _ := cmd.Flags().GetString("company"); company != "" {
				id, err := strconv.ParseInt(company, 10, 64)
				if err != nil {
					return fmt.Errorf("ID de empresa inválido: %s", company)
				}
				filter.CompanyID = id
			}
			filter.DocumentType, _ = cmd.Flags().GetString("category")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			if period, _ := cmd.Flags().GetString("period"); period != "" {
				r, err := validate.ParseRange(period)
				if err != nil {
					return err
				}
				filter.StartDate = r.Start
				filter.EndDate = r.End
			}

			docs, err := a.backend.CVM.Documents(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				display.Info("Nenhum documento encontrado para os filtros")
				return nil
			}
			fmt.Println(display.Title("Documentos CVM"))
			fmt.Println(display.DocumentsTable(docs))
			return nil
		},
	}
	docsCmd.Flags().String("company", "", "Filtra por ID de empresa")
	docsCmd.Flags().String("category", "", "Filtra por categoria")
	docsCmd.Flags().String("period", "", "Período AAAA-MM-DD - AAAA-MM-DD")
	docsCmd.Flags().Int("limit", 50, "Quantidade máxima de documentos")
	cmd.AddCommand(docsCmd)

	return cmd
}

// newMacroCmd creates the macro indicators command group.
func newMacroCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macro",
		Short: "Indicadores macroeconômicos",
		RunE: func(cmd *cobra.Command, args []string) error {
			indicators, err := a.backend.Macro.Indicators(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Indicadores"))
			fmt.Println(display.IndicatorsTable(indicators))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "history [INDICADOR]",
		Short: "Histórico de um indicador (selic, ipca, ptax, ibov)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := a.backend.Macro.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Histórico de " + args[0]))
			for _, p := range points {
				fmt.Printf("%s  %10.2f\n", p.Date, p.Value)
			}
			return nil
		},
	})

	return cmd
}

// newGuideCmd creates the stock guide command.
func newGuideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Stock guide do sell side",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.backend.StockGuide.Rows(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(display.Title("Stock Guide"))
			fmt.Println(display.StockGuideTable(rows))
			return nil
		},
	}
}
