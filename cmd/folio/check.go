package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the content directory",
		Long:  "Loads and validates site.yaml, projects.yaml, skills.yaml and blog posts without starting the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := loadConfig(flags)
				if err != nil {
					return err
				}
				dir = cfg.ContentDir
			}
			var fsys fs.FS = content.DefaultFS()
			if dir != "" {
				fsys = os.DirFS(dir)
			}
			return runCheck(cmd.OutOrStdout(), fsys, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "content-dir", "", "content directory (overrides config)")

	return cmd
}

func runCheck(out io.Writer, fsys fs.FS, dir string) error {
	if dir == "" {
		dir = "embedded sample content"
	}
	cat, err := content.Load(fsys)
	if err != nil {
		var perr *content.ParseError
		var verr *content.ValidationError
		switch {
		case errors.As(err, &perr) && perr.Line > 0:
			return fmt.Errorf("%s: %s line %d: %w", dir, perr.Path, perr.Line, perr.Err)
		case errors.As(err, &verr):
			return fmt.Errorf("%s: %s %s", dir, verr.Field, verr.Message)
		}
		return fmt.Errorf("%s: %w", dir, err)
	}
	fmt.Fprintf(out, "%s: ok\n", dir)
	fmt.Fprintf(out, "  profile:    %s\n", cat.Site.Name)
	fmt.Fprintf(out, "  projects:   %d\n", len(cat.Projects))
	fmt.Fprintf(out, "  skills:     %d in %d categories\n", len(cat.Skills), len(cat.Site.SkillCategories))
	fmt.Fprintf(out, "  blog:       %d entries, %d with pages\n", len(cat.Blog), len(cat.PublishedPosts()))
	return nil
}
