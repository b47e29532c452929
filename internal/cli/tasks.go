package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/zendo/internal/app"
	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/parser"
	"github.com/dori/zendo/internal/tasks"
)

var errNotFound = errors.New("not found")

// resolveTask accepts a full id or a unique id prefix
func resolveTask(m *tasks.Manager, arg string) (model.Task, error) {
	if t, ok := m.Get(arg); ok {
		return t, nil
	}
	var found []model.Task
	for _, t := range m.All() {
		if strings.HasPrefix(t.ID, arg) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("task %q: %w", arg, errNotFound)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("task id %q is ambiguous, %d tasks match", arg, len(found))
	}
}

func completeEnum[T ~string](values []T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp)
}

func (c *cli) addCmd() *cobra.Command {
	var category, why string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task, parsing dates, priority, project, label and recurrence",
		Example: `  zendo add Submit report by friday !must @work
  zendo add Meditate daily --category rituals --why "stay calm"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := model.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			return c.withApp(cmd.Context(), true, func(a *app.App) error {
				t, ok := a.Tasks.Add(strings.Join(args, " "), cat, tasks.AddOptions{Why: why})
				if !ok {
					return errors.New("task text is empty")
				}
				fmt.Fprint(cmd.OutOrStdout(), "Added ")
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryToday), "today, rituals or someday")
	cmd.Flags().StringVarP(&why, "why", "w", "", "why this task matters")
	cmd.RegisterFlagCompletionFunc("category", completeEnum(model.Categories))
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var (
		f                                        tasks.Filter
		category, project, label, priority, date string
		open                                     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks grouped by category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Category = model.Category(category)
			f.Project = model.Project(project)
			f.Label = model.Label(label)
			f.Priority = model.Priority(priority)
			if err := f.Validate(); err != nil {
				return err
			}
			day, err := calendar.Parse(date)
			if err != nil {
				return err
			}
			f.Date = day

			return c.withApp(cmd.Context(), false, func(a *app.App) error {
				var list []model.Task
				for _, t := range a.Tasks.Find(f) {
					if open && t.Completed {
						continue
					}
					list = append(list, t)
				}
				printGrouped(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&category, "category", "c", "", "only this category")
	fl.StringVarP(&project, "project", "p", "", "only this project")
	fl.StringVarP(&label, "label", "l", "", "only this label")
	fl.StringVar(&priority, "priority", "", "only this priority")
	fl.StringVarP(&date, "date", "d", "", "only tasks scheduled or due on YYYY-MM-DD")
	fl.BoolVar(&f.Overdue, "overdue", false, "only overdue tasks")
	fl.BoolVar(&f.Recurring, "recurring", false, "only recurring tasks")
	fl.BoolVar(&open, "open", false, "hide completed tasks")
	cmd.RegisterFlagCompletionFunc("category", completeEnum(model.Categories))
	cmd.RegisterFlagCompletionFunc("project", completeEnum(model.Projects))
	cmd.RegisterFlagCompletionFunc("label", completeEnum(model.Labels))
	return cmd
}

func (c *cli) doneCmd() *cobra.Command {
	var mood string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task; recurring tasks get their next occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := model.Mood(mood)
			if !md.Valid() {
				return fmt.Errorf("unknown mood %q", mood)
			}
			return c.withApp(cmd.Context(), true, func(a *app.App) error {
				t, err := resolveTask(a.Tasks, args[0])
				if err != nil {
					return err
				}
				res, _ := a.Tasks.Complete(t.ID, md)

				out := cmd.OutOrStdout()
				doneColor.Fprint(out, "Completed ")
				printTask(out, res.Task)
				if res.Successor != nil {
					fmt.Fprint(out, "Next     ")
					printTask(out, *res.Successor)
				}
				fmt.Fprintf(out, "Streak: %d day(s) %s\n", a.Tasks.ConsistencyStreak(), plant(a.Tasks.Growth()))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&mood, "mood", "m", "", "how it felt: "+joinEnum(model.Moods))
	cmd.RegisterFlagCompletionFunc("mood", completeEnum(model.Moods))
	return cmd
}

func joinEnum[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

func (c *cli) undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a completed task as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), true, func(a *app.App) error {
				t, err := resolveTask(a.Tasks, args[0])
				if err != nil {
					return err
				}
				a.Tasks.Uncomplete(t.ID)
				t, _ = a.Tasks.Get(t.ID)
				fmt.Fprint(cmd.OutOrStdout(), "Reopened ")
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), true, func(a *app.App) error {
				t, err := resolveTask(a.Tasks, args[0])
				if err != nil {
					return err
				}
				a.Tasks.Delete(t.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(t.ID), t.Text)
				return nil
			})
		},
	}
}

func (c *cli) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today <id>...",
		Short: "Move tasks to today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), true, func(a *app.App) error {
				ids := make([]string, 0, len(args))
				for _, arg := range args {
					t, err := resolveTask(a.Tasks, arg)
					if err != nil {
						return err
					}
					ids = append(ids, t.ID)
				}
				n := a.Tasks.MoveTasksToToday(ids)
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d task(s) to today\n", n)
				return nil
			})
		},
	}
}

func (c *cli) streakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the consistency streak and the plant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), false, func(a *app.App) error {
				g := a.Tasks.Growth()
				s := a.Tasks.Stats()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Streak:  %d day(s)\n", g.Streak)
				fmt.Fprintf(out, "Plant:   %s (%d leaves, %d flowers)\n", plant(g), g.Leaves, g.Flowers)
				fmt.Fprintf(out, "Tasks:   %d total, %d done, %d overdue, %d recurring\n",
					s.Total, s.Completed, s.Overdue, s.Recurring)
				return nil
			})
		},
	}
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>...",
		Short: "Show how quick-add text would be parsed, without saving",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := parser.Parse(strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
