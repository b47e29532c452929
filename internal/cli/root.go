// Package cli is the cobra command tree of the zendo binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/dori/zendo/internal/app"
	"github.com/dori/zendo/internal/config"
	"github.com/dori/zendo/internal/tasks"
	"github.com/dori/zendo/internal/ui"
)

// skipConfig marks commands that run without loading the config file
const skipConfig = "skip-config"

type cli struct {
	version    string
	configPath string
	view       string

	cfg *config.Config
	log lgr.L

	// extra manager options, tests pin the clock here
	managerOpts []tasks.Option
}

// Execute runs the root command
func Execute(version string) error {
	root := newRootCmd(&cli{version: version})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "zendo",
		Short: "zendo - a calm task list with a streak plant",
		Long: `zendo keeps today's intentions, daily rituals and someday ideas in one place.

Run without arguments to open the terminal UI. Tasks are added in plain
language: "Submit report by friday !must @work #deep-work every week".`,
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return c.loadConfig(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}

	root.Flags().StringVar(&c.view, "view", "tasks", "starting view: tasks, upcoming or notes")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(
		c.addCmd(),
		c.listCmd(),
		c.doneCmd(),
		c.undoCmd(),
		c.rmCmd(),
		c.todayCmd(),
		c.streakCmd(),
		c.parseCmd(),
		c.noteCmd(),
		c.serveCmd(),
		c.tokenCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) loadConfig(logOut io.Writer) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = setupLog(cfg, logOut)
	return nil
}

// setupLog configures the global logger and returns it
func setupLog(cfg *config.Config, w io.Writer) lgr.L {
	opts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.Out(w), lgr.Err(w)}
	if cfg.Log.Debug {
		opts = append(opts, lgr.Debug)
	}
	if cfg.API.Secret != "" {
		opts = append(opts, lgr.Secret(cfg.API.Secret))
	}
	lgr.Setup(opts...)
	return lgr.Default()
}

// open starts a session. Commands that save the collection take the
// single-writer lock.
func (c *cli) open(ctx context.Context, lock bool) (*app.App, error) {
	a, err := app.New(ctx, c.cfg, app.Options{
		Lock:           lock,
		Logger:         c.log,
		ManagerOptions: c.managerOpts,
	})
	if errors.Is(err, app.ErrLocked) {
		return nil, fmt.Errorf("%w: close the TUI or stop the API server first", err)
	}
	return a, err
}

// withApp runs fn inside a session and closes it afterwards
func (c *cli) withApp(ctx context.Context, lock bool, fn func(a *app.App) error) error {
	a, err := c.open(ctx, lock)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.log.Logf("[WARN] %v", err)
		}
	}()
	return fn(a)
}

// runTUI owns the terminal, so logging goes to a file in the data dir
func (c *cli) runTUI(ctx context.Context) error {
	start, err := ui.ParseView(c.view)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(c.cfg.DataDir, "zendo.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	c.log = setupLog(c.cfg, logFile)

	return c.withApp(ctx, true, func(a *app.App) error {
		a.Log.Logf("[INFO] starting tui, data dir %s", a.DataDir)
		p := tea.NewProgram(ui.NewRootModel(a, start), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
}
