package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/supertonic-assets/internal/assets"
)

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Download all assets and package them into a release archive",
		Long: "Download the complete Supertonic asset set into a working directory and\n" +
			"package it into a gzip-compressed tar archive suitable for a release\n" +
			"upload. Every file is required; any download failure fails the build.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			err = assets.BuildRelease(assets.BuildOptions{
				Output:   cfg.Paths.Output,
				WorkDir:  cfg.Paths.WorkDir,
				Revision: cfg.Remote.Revision,
				Styles:   assets.ParseStyles(cfg.Fetch.Styles),
				Force:    cfg.Fetch.Force,
				Keep:     cfg.Fetch.KeepWorkDir,
				BaseURL:  cfg.Remote.BaseURL,
				Token:    cfg.Remote.Token,
				Stdout:   os.Stdout,
				Stderr:   os.Stderr,
			})
			if err != nil {
				return fmt.Errorf("release build failed: %w", err)
			}

			return nil
		},
	}

	return cmd
}
