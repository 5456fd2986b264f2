package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/display"
	"github.com/painelfin/painelgo/internal/notes"
)

// newNotesCmd creates the local research-notes command group.
func newNotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Notas de pesquisa locais",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notes.NewStore(a.cfg.DataDir)
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				display.Info("Nenhuma nota ainda, use 'painelgo notes add'")
				return nil
			}
			fmt.Println(display.Title("Notas"))
			fmt.Println(display.NotesTable(all))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Cria uma nota",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notes.NewStore(a.cfg.DataDir)
			if err != nil {
				return err
			}
			title, err := promptInput("Título:", "")
			if err != nil {
				return err
			}
			content, err := promptEditor("Conteúdo da nota:")
			if err != nil {
				return err
			}
			note, err := store.Create(title, content)
			if err != nil {
				return err
			}
			display.Success("Nota " + note.ID + " criada")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [ID]",
		Short: "Mostra uma nota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notes.NewStore(a.cfg.DataDir)
			if err != nil {
				return err
			}
			note, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(display.Title(note.Title))
			fmt.Println(note.Content)
			fmt.Printf("\nAtualizada em %s\n", note.LastUpdated)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit [ID]",
		Short: "Edita uma nota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notes.NewStore(a.cfg.DataDir)
			if err != nil {
				return err
			}
			note, err := store.Get(args[0])
			if err != nil {
				return err
			}
			title, err := promptInput("Título:", note.Title)
			if err != nil {
				return err
			}
			content, err := promptEditorWithDefault("Conteúdo da nota:", note.Content)
			if err != nil {
				return err
			}
			if _, err := store.Update(note.ID, title, content); err != nil {
				return err
			}
			display.Success("Nota " + note.ID + " atualizada")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [ID]",
		Short: "Remove uma nota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notes.NewStore(a.cfg.DataDir)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			display.Success("Nota " + args[0] + " removida")
			return nil
		},
	})

	return cmd
}
