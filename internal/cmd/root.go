// Package cmd wires the bmk command line: the interactive browser, direct
// launch by query, and the scripting subcommands.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bmk-dev/bmk/internal/browser"
	"github.com/bmk-dev/bmk/internal/config"
	"github.com/bmk-dev/bmk/internal/logging"
	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/storage"
)

// env holds what every command needs once flags are parsed.
type env struct {
	file       string
	configPath string
	debug      bool

	// configFile is the config path in effect, after defaults.
	configFile string

	cfg       *config.Config
	logCloser io.Closer

	// newLauncher builds the browser launcher; replaced in tests.
	newLauncher func(cfg *config.Config) browser.Launcher
}

func defaultLauncher(cfg *config.Config) browser.Launcher {
	return browser.NewSystemLauncher(cfg.Browser, cfg.LaunchTimeout)
}

// NewRootCmd returns the `bmk` command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{newLauncher: defaultLauncher})
}

func newRootCmd(rt *env) *cobra.Command {
	var pick bool

	root := &cobra.Command{
		Use:   "bmk [query...]",
		Short: "bmk - terminal bookmark manager",
		Long: `bmk keeps named bookmarks in a plain file and opens them in your browser.

Without arguments bmk starts the interactive browser. With a query it opens
the best fuzzy match directly.`,
		Example: `  # Browse, search and edit interactively
  bmk

  # Open the best match for "gh"
  bmk gh

  # Choose among all matches for "docs"
  bmk --pick docs

  # Use a different bookmarks file
  bmk --file ~/work.yaml`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return rt.setup()
		},
		PersistentPostRunE: func(c *cobra.Command, _ []string) error {
			return rt.teardown()
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return rt.runTUI(c)
			}
			return rt.runLaunch(c, strings.Join(args, " "), pick)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&rt.file, "file", "f", "", "bookmarks file (overrides $"+config.EnvFile+" and the config)")
	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bmk/config.yaml)")
	root.PersistentFlags().BoolVar(&rt.debug, "debug", false, "enable debug logging to the log file")
	root.Flags().BoolVarP(&pick, "pick", "p", false, "pick among all matches instead of opening the best one")

	root.AddCommand(
		listCmd(rt),
		addCmd(rt),
		openCmd(rt),
		deleteCmd(rt),
		tagsCmd(rt),
		importCmd(rt),
		exportCmd(rt),
		checkCmd(rt),
		pathCmd(rt),
		configCmd(rt),
	)

	return root
}

// setup loads the config and installs the logger.
func (rt *env) setup() error {
	path := rt.configPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.configFile = path

	closer, err := logging.Setup(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Debug: rt.debug,
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	rt.logCloser = closer

	log.Debug().Str("config", path).Msg("config loaded")
	return nil
}

func (rt *env) teardown() error {
	if rt.logCloser == nil {
		return nil
	}
	err := rt.logCloser.Close()
	rt.logCloser = nil
	return err
}

// bookmarksFile resolves the bookmarks file from flag, env, config and default.
func (rt *env) bookmarksFile() (string, error) {
	fallback, err := storage.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolve bookmarks path: %w", err)
	}
	return rt.cfg.ResolveBookmarksFile(rt.file, fallback), nil
}

// openStorage opens the backend for the resolved bookmarks file.
// Callers release it with storage.Close.
func (rt *env) openStorage() (storage.Storage, error) {
	path, err := rt.bookmarksFile()
	if err != nil {
		return nil, err
	}
	s, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	log.Debug().Str("file", s.Path()).Str("backend", fmt.Sprintf("%T", s)).Msg("storage opened")
	return s, nil
}

// withStore loads the bookmarks, runs fn and saves the store when fn
// reports a change. Nothing is written when fn fails.
func (rt *env) withStore(fn func(store *model.Store) (changed bool, err error)) error {
	s, err := rt.openStorage()
	if err != nil {
		return err
	}
	defer storage.Close(s)

	store, err := s.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	changed, err := fn(store)
	if err != nil || !changed {
		return err
	}

	if err := s.Save(store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}
