package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/synthdom/internal/config"
	"github.com/vango-dev/synthdom/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		force bool
		xhtml bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.ConfigFileName,
		Long: `Write a synthdom.json with default settings into dir (default: the
current directory). render and serve read it from the working directory
when --config is not given.

Examples:
  synthdom init
  synthdom init site --xhtml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, xhtml, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing "+config.ConfigFileName)
	cmd.Flags().BoolVar(&xhtml, "xhtml", false, "Enable XHTML output in the written config")

	return cmd
}

func runInit(dir string, xhtml, force bool) error {
	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New("E160").
			WithDetail(path + " already exists.").
			WithSuggestion("Use --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New("E140").Wrap(err)
	}

	cfg := config.New()
	cfg.Render.XHTML = xhtml
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("Created %s", path)
	return nil
}
