package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/config"
	"github.com/painelfin/painelgo/internal/backend"
	"github.com/painelfin/painelgo/internal/debug"
	"github.com/painelfin/painelgo/internal/display"
)

// app carries what every command needs: the loaded config and the backend
// client, built once in the root command.
type app struct {
	cfg     *config.Config
	backend *backend.Client
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	a := &app{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "painelgo",
		Short: "Painel de ações, notícias e documentos CVM da B3",
		Long: `painelgo acompanha o mercado brasileiro pelo terminal: cotações em tempo
real, notícias, documentos CVM, indicadores macroeconômicos, portfólio e o
stock guide do sell side.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagged, _ := cmd.Flags().GetBool("debug"); flagged {
				cfg.Debug = true
			}
			if cfg.Debug {
				debug.Enable()
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuração inválida: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("falha ao criar diretórios: %w", err)
			}
			a.backend = backend.New(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(a)
		},
	}

	rootCmd.AddCommand(newNewsCmd(a))
	rootCmd.AddCommand(newCompanyNewsCmd(a))
	rootCmd.AddCommand(newCVMCmd(a))
	rootCmd.AddCommand(newMacroCmd(a))
	rootCmd.AddCommand(newPortfolioCmd(a))
	rootCmd.AddCommand(newGuideCmd(a))
	rootCmd.AddCommand(newQuotesCmd(a))
	rootCmd.AddCommand(newNotesCmd(a))
	rootCmd.AddCommand(newChatCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Ativa logs de depuração")

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("painelgo v1.0.0")
		},
	}
}

// newConfigCmd creates the config command.
func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Gerencia a configuração",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Mostra a configuração atual",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Valida configuração e conexão com o backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cmd, a)
		},
	})

	return configCmd
}

func showConfig(cfg *config.Config) {
	fmt.Println(display.Title("Configuração"))
	fmt.Printf("Backend:              %s\n", cfg.BackendURL)
	fmt.Printf("Feed de cotações:     %s\n", cfg.WSUrl)
	fmt.Printf("Portfólio padrão:     %d\n", cfg.DefaultPortfolioID)
	fmt.Printf("Diretório de dados:   %s\n", cfg.DataDir)
	fmt.Printf("Cache:                %t (%s)\n", cfg.CacheEnabled, cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("Provedor de IA:       %s\n", cfg.LLMProvider)
	fmt.Printf("Modelo de chat:       %s\n", cfg.ChatModel)
	if cfg.ChatAPIKey() != "" {
		fmt.Println("Chave de API:         configurada")
	} else {
		fmt.Println("Chave de API:         não configurada (assistente desativado)")
	}
	fmt.Printf("Debug:                %t\n", cfg.Debug)
}

func validateConfig(cmd *cobra.Command, a *app) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	display.Success("Configuração válida")

	status, err := a.backend.Realtime.Status(cmd.Context())
	if err != nil {
		display.Error(fmt.Errorf("backend inacessível em %s: %w", a.cfg.BackendURL, err))
		return err
	}
	display.Success("Backend acessível")
	fmt.Println(display.MarketStatusLine(status))

	if a.cfg.ChatAPIKey() == "" {
		display.Info("Assistente de IA desativado: configure OPENAI_API_KEY ou DEEPSEEK_API_KEY")
	}
	return nil
}
