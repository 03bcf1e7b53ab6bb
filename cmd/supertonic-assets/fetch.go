package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/supertonic-assets/internal/assets"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the Supertonic asset set into a destination directory",
		Long: "Download the Supertonic asset set.\n\n" +
			"When a release archive URL is configured it is tried first; any failure\n" +
			"on that path falls back to per-file downloads from the Hugging Face base\n" +
			"URL template.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			err = assets.FetchAssets(assets.FetchOptions{
				Dest:        cfg.Paths.Dest,
				WorkDir:     cfg.Paths.WorkDir,
				Revision:    cfg.Remote.Revision,
				Styles:      assets.ParseStyles(cfg.Fetch.Styles),
				Force:       cfg.Fetch.Force,
				SkipRelease: cfg.Fetch.SkipRelease,
				ReleaseURL:  cfg.Remote.ReleaseURL,
				BaseURL:     cfg.Remote.BaseURL,
				Token:       cfg.Remote.Token,
				Stdout:      os.Stdout,
				Stderr:      os.Stderr,
			})
			if err != nil {
				return fmt.Errorf("asset fetch failed: %w", err)
			}

			return nil
		},
	}

	return cmd
}
