package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/zendo/internal/app"
	"github.com/dori/zendo/internal/model"
)

// resolveNote accepts a full note id or a unique prefix
func resolveNote(notes []model.Note, arg string) (model.Note, error) {
	var found []model.Note
	for _, n := range notes {
		if n.ID == arg {
			return n, nil
		}
		if strings.HasPrefix(n.ID, arg) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return model.Note{}, fmt.Errorf("note %q: %w", arg, errNotFound)
	case 1:
		return found[0], nil
	default:
		return model.Note{}, fmt.Errorf("note id %q is ambiguous, %d notes match", arg, len(found))
	}
}

func (c *cli) noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage mind dump notes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text>...",
			Short: "Write a note",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				content := strings.Join(args, " ")
				if strings.TrimSpace(content) == "" {
					return fmt.Errorf("note is empty")
				}
				return c.withApp(cmd.Context(), true, func(a *app.App) error {
					n, err := a.DB.CreateNote(cmd.Context(), content)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Saved note %s\n", shortID(n.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List notes, newest first",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd.Context(), false, func(a *app.App) error {
					notes, err := a.DB.GetNotes(cmd.Context())
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					if len(notes) == 0 {
						fmt.Fprintln(out, "No notes.")
					}
					for _, n := range notes {
						fmt.Fprintf(out, "%s %s  %s\n", idColor.Sprint(shortID(n.ID)),
							metaColor.Sprint(n.CreatedAt.Local().Format("2006-01-02 15:04")), n.Preview(60))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "edit <id> <text>...",
			Short: "Replace the content of a note",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd.Context(), true, func(a *app.App) error {
					notes, err := a.DB.GetNotes(cmd.Context())
					if err != nil {
						return err
					}
					n, err := resolveNote(notes, args[0])
					if err != nil {
						return err
					}
					if _, err := a.DB.UpdateNote(cmd.Context(), n.ID, strings.Join(args[1:], " ")); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", shortID(n.ID))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"delete"},
			Short:   "Delete a note",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd.Context(), true, func(a *app.App) error {
					notes, err := a.DB.GetNotes(cmd.Context())
					if err != nil {
						return err
					}
					n, err := resolveNote(notes, args[0])
					if err != nil {
						return err
					}
					if _, err := a.DB.DeleteNote(cmd.Context(), n.ID); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", shortID(n.ID))
					return nil
				})
			},
		},
	)
	return cmd
}
