package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bmk-dev/bmk/internal/config"
	"github.com/bmk-dev/bmk/internal/culler"
	"github.com/bmk-dev/bmk/internal/exporter"
	"github.com/bmk-dev/bmk/internal/importer"
	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/search"
	"github.com/bmk-dev/bmk/internal/storage"
)

func listCmd(rt *env) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks sorted by name",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			store, err := rt.loadStore()
			if err != nil {
				return err
			}

			results := search.ComputeView(store.Bookmarks, "", tag)
			if len(results) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "no bookmarks found")
				return nil
			}

			rows := make([][]string, len(results))
			for i, r := range results {
				rows[i] = []string{r.Bookmark.Name, r.Bookmark.URL, r.Bookmark.Desc, strings.Join(r.Bookmark.Tags, ", ")}
			}
			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("NAME", "URL", "DESC", "TAGS").
				Rows(rows...)
			fmt.Fprintln(c.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only list bookmarks with this tag")
	return cmd
}

func addCmd(rt *env) *cobra.Command {
	var desc, tags string
	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a bookmark",
		Example: `  bmk add gh https://github.com --tags dev,code
  bmk add docs https://doc.rust-lang.org --desc "Rust docs" --tags rust`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			b := model.NewBookmark(model.NewBookmarkParams{
				Name: args[0],
				URL:  args[1],
				Desc: desc,
				Tags: model.ParseTags(tags),
			})
			err := rt.withStore(func(store *model.Store) (bool, error) {
				if err := store.AddBookmark(b); err != nil {
					return false, err
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			log.Info().Str("name", b.Name).Msg("bookmark added")
			fmt.Fprintf(c.OutOrStdout(), "Added %s\n", b.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tags")
	return cmd
}

func openCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open the bookmark with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			store, err := rt.loadStore()
			if err != nil {
				return err
			}
			b := store.GetBookmark(args[0])
			if b == nil {
				return fmt.Errorf("%w: %q", model.ErrNotFound, args[0])
			}
			return rt.launch(c, *b)
		},
	}
}

func deleteCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete the bookmark with exactly this name",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := args[0]
			err := rt.withStore(func(store *model.Store) (bool, error) {
				if err := store.RemoveBookmark(name); err != nil {
					return false, err
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			log.Info().Str("name", name).Msg("bookmark removed")
			fmt.Fprintf(c.OutOrStdout(), "Deleted %s\n", name)
			return nil
		},
	}
}

func tagsCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			store, err := rt.loadStore()
			if err != nil {
				return err
			}
			for _, tag := range store.Tags() {
				fmt.Fprintf(c.OutOrStdout(), "%s\t%d\n", tag, len(store.FilterByTag(tag)))
			}
			return nil
		},
	}
}

func importCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Import bookmarks from a Netscape bookmark HTML file as exported by browsers.

Folders become tags. Bookmarks whose URL is already present are skipped and
names that are taken get a numeric suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			var added, skipped int
			err = rt.withStore(func(store *model.Store) (bool, error) {
				added, skipped = store.ImportMerge(bookmarks)
				return added > 0, nil
			})
			if err != nil {
				return err
			}

			log.Info().Int("added", added).Int("skipped", skipped).Str("file", args[0]).Msg("imported")
			fmt.Fprintf(c.OutOrStdout(), "Imported %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(c.OutOrStdout(), " (%d skipped)", skipped)
			}
			fmt.Fprintln(c.OutOrStdout())
			return nil
		},
	}
}

func exportCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to browser HTML",
		Long:  "Export bookmarks as a Netscape bookmark HTML file (default ~/Downloads/bookmarks-export-YYYY-MM-DD.html).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = exporter.DefaultExportPath(); err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			store, err := rt.loadStore()
			if err != nil {
				return err
			}
			if err := exporter.WriteFile(path, store); err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Exported %d bookmarks to %s\n", store.Len(), path)
			return nil
		},
	}
}

func checkCmd(rt *env) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check bookmark URLs for dead links",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			store, err := rt.loadStore()
			if err != nil {
				return err
			}

			bookmarks := search.Bookmarks(search.ComputeView(store.Bookmarks, "", tag))
			if len(bookmarks) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "no bookmarks to check")
				return nil
			}

			errOut := c.ErrOrStderr()
			results := culler.CheckURLs(c.Context(), bookmarks, culler.Options{
				Concurrency:    rt.cfg.CheckConcurrency,
				Timeout:        rt.cfg.CheckTimeout,
				ExcludeDomains: rt.cfg.CheckExcludeDomains,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				},
			})
			fmt.Fprintln(errOut)

			printCheckResults(c, culler.Group(results))
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only check bookmarks with this tag")
	return cmd
}

func printCheckResults(c *cobra.Command, groups map[culler.Status][]culler.Result) {
	out := c.OutOrStdout()

	if dead := groups[culler.Dead]; len(dead) > 0 {
		fmt.Fprintf(out, "Dead (%d):\n", len(dead))
		for _, r := range dead {
			fmt.Fprintf(out, "  %s  %s  [%d]\n", r.Bookmark.Name, r.Bookmark.URL, r.StatusCode)
		}
	}
	if unreachable := groups[culler.Unreachable]; len(unreachable) > 0 {
		fmt.Fprintf(out, "Unreachable (%d):\n", len(unreachable))
		for _, r := range unreachable {
			fmt.Fprintf(out, "  %s  %s  %s\n", r.Bookmark.Name, r.Bookmark.URL, r.Error)
		}
	}
	fmt.Fprintf(out, "Healthy: %d\n", len(groups[culler.Healthy]))
}

func pathCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the bookmarks file path",
		Long:  "Print the file bookmarks are read from and written to, after --file, $" + config.EnvFile + " and the config are applied.",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := rt.openStorage()
			if err != nil {
				return err
			}
			defer storage.Close(s)

			fmt.Fprintln(c.OutOrStdout(), s.Path())
			return nil
		},
	}
}

func configCmd(rt *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if _, err := os.Stat(rt.configFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", rt.configFile)
			}

			cfg := config.Default()
			if err := cfg.Save(rt.configFile); err != nil {
				return err
			}
			log.Info().Str("file", rt.configFile).Msg("config written")
			fmt.Fprintf(c.OutOrStdout(), "Wrote %s\n", rt.configFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	showPath := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), rt.configFile)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showPath)
	return cmd
}
