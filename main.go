// Command jump resolves short queries to directories you have visited.
//
// Usage:
//
//	jump <query...>      Print the best matching directory
//	jump --chdir         Record a visit to the current directory
//	jump --init          Create the history database
//	jump --shell zsh     Print shell integration
//	jump --browse        Pick a directory from the history
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/montrey/jump/config"
	"github.com/montrey/jump/history"
	"github.com/montrey/jump/search"
	"github.com/montrey/jump/shell"
	"github.com/montrey/jump/store"
	"github.com/montrey/jump/ui"
)

const (
	msgNoArgs         = "jump: no arguments supplied"
	msgNotInitialized = "The jump database does not appear to be initialized. Use jump --init to do so."
	msgEmpty          = "No entries in jump database. Try changing directories first."
)

var errNoArgs = errors.New(msgNoArgs)

type options struct {
	configPath string
	initialize bool
	chdir      bool
	shell      string
	browse     bool
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "jump [query...]",
		Short: "Jump to a previously visited directory",
		Long: `jump keeps a history of the directories your shell visits and prints
the one that best matches a short query, usually the last segment or two
of the path.

Examples:
  jump proj
  jump drop proj
  eval "$(jump --shell zsh)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, args)
		},
	}

	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the config file")
	cmd.Flags().BoolVarP(&opts.initialize, "init", "i", false, "initialize the database")
	cmd.Flags().BoolVarP(&opts.chdir, "chdir", "c", false, "record a visit to the current directory (shell hook)")
	cmd.Flags().StringVarP(&opts.shell, "shell", "s", "", "print shell integration ("+strings.Join(shell.Supported(), ", ")+")")
	cmd.Flags().BoolVarP(&opts.browse, "browse", "b", false, "browse the history interactively")

	return cmd
}

func (a *app) run(opts options, args []string) error {
	// Shell output does not need a config or a database.
	if opts.shell != "" {
		script, err := shell.Script(opts.shell)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.stdout, script)
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	switch {
	case opts.initialize:
		return a.initDB()
	case opts.chdir:
		return a.recordVisit()
	case opts.browse:
		return a.browse()
	case len(args) == 0:
		return errNoArgs
	default:
		return a.jump(args)
	}
}

func (a *app) initDB() error {
	db, err := store.Init(a.cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	a.logger.Debug("database initialized", slog.String("path", db.Path()))
	_, err = fmt.Fprintf(a.stdout, "Initialized jump database at %s\n", db.Path())
	return err
}

func (a *app) recordVisit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("current directory: %w", err)
	}

	excluder, err := history.LoadExcluder(a.cfg.ExcludeFile)
	if err != nil {
		return err
	}
	if excluder.Excluded(cwd) {
		a.logger.Debug("directory excluded", slog.String("path", cwd))
		return nil
	}

	db, err := store.Open(a.cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	var d store.Dir
	err = db.Update(func(s *store.Store) error {
		var visitErr error
		d, visitErr = history.RecordVisit(s, cwd, a.now().Unix())
		return visitErr
	})
	if err != nil {
		return err
	}

	a.logger.Debug("visit recorded",
		slog.Int64("id", d.ID),
		slog.String("path", d.Path),
		slog.Int64("access_count", d.AccessCount))
	return nil
}

func (a *app) jump(query []string) error {
	db, err := store.Open(a.cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := search.Resolve(db, query)
	if err != nil {
		return err
	}

	a.logger.Debug("resolved",
		slog.String("query", strings.Join(query, " ")),
		slog.String("path", m.Dir.Path),
		slog.Int("score", m.Score))

	if a.cfg.RecordSearches {
		if err := db.AddSearch(m.Dir.ID, strings.Join(query, " ")); err != nil {
			a.logger.Warn("failed to record search", slog.String("error", err.Error()))
		}
	}

	_, err = fmt.Fprintln(a.stdout, m.Dir.Path)
	return err
}

func (a *app) browse() error {
	db, err := store.Open(a.cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	dirs, err := db.RecentDirs(a.cfg.BrowseLimit)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return search.ErrEmptyResult
	}

	// The picker draws on stderr so that $(jump --browse) captures only the
	// chosen path.
	selected, err := ui.Browse(dirs, a.stdin, a.stderr)
	if err != nil {
		return err
	}
	if selected != "" {
		_, err = fmt.Fprintln(a.stdout, selected)
	}
	return err
}

// userMessage turns an error into the line printed on stderr.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotInitialized):
		return msgNotInitialized
	case errors.Is(err, search.ErrEmptyResult):
		return msgEmpty
	case errors.Is(err, errNoArgs):
		return msgNoArgs
	default:
		return fmt.Sprintf("error: %v", err)
	}
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, now: time.Now}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
