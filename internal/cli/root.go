// Package cli holds the cobra command tree. The bare command opens the
// interactive board; subcommands script the same collections.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/config"
	"github.com/sadopc/corkboard/internal/logs"
	"github.com/sadopc/corkboard/internal/tui"
	"github.com/sadopc/corkboard/internal/workspace"
)

// Build information, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type rootOptions struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	verbose   bool
}

// session is what a command gets after config and storage are resolved.
type session struct {
	cfg *config.Config
	log *logs.Logger
	ws  *workspace.Workspace
}

func (s *session) Close() {
	if err := s.ws.Close(); err != nil {
		s.log.Warn("close workspace", "err", err)
	}
	_ = s.log.Close()
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(config.Options{
		Dir: o.configDir,
		Overrides: map[string]string{
			config.KeyDataDir:  o.dataDir,
			config.KeyBackend:  o.backend,
			config.KeyLogLevel: o.logLevel,
		},
	})
}

// open resolves config and storage. Interactive sessions log to the log
// file; scripted ones log warnings to stderr, or everything with --verbose.
func (o *rootOptions) open(cmd *cobra.Command, interactive bool) (*session, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}

	lo := logs.Options{Level: cfg.LogLevel}
	switch {
	case interactive:
		lo.File = cfg.LogPath()
	case o.verbose:
		lo.Level = "debug"
		lo.Writer = cmd.ErrOrStderr()
	default:
		lo.Level = "warn"
		lo.Writer = cmd.ErrOrStderr()
	}
	log, err := logs.New(lo)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log.Logger)

	ws, err := workspace.Open(workspace.Options{
		Kind:    cfg.Backend,
		DataDir: cfg.DataDir,
		Logger:  log.Logger,
	})
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	log.Debug("session opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return &session{cfg: cfg, log: log, ws: ws}, nil
}

func New() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "corkboard",
		Short: "A cozy board of sticky notes, a calendar and a budget.",
		Long: `Corkboard keeps checklists, habit trackers and long term goals on a board,
annotates calendar days and tracks income and expenses.

Run without a subcommand to open the interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			p := tea.NewProgram(tui.NewApp(s.ws), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configDir, "config-dir", "", "Directory holding config.yaml (default ~/.config/corkboard)")
	pf.StringVar(&o.dataDir, "data-dir", "", "Where collections are stored")
	pf.StringVar(&o.backend, "backend", "", "Storage backend, sqlite or diskv")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level for the log file")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging")

	addNotes(cmd, o)
	addEvents(cmd, o)
	addTx(cmd, o)
	addConfig(cmd, o)
	addStatus(cmd, o)
	addVersion(cmd)
	return cmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
