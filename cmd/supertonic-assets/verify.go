package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/supertonic-assets/internal/assets"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a destination directory holds a complete asset set",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			missing, err := assets.VerifyDir(cfg.Paths.Dest, assets.ParseStyles(cfg.Fetch.Styles))
			if err != nil {
				return err
			}

			if len(missing) > 0 {
				for _, rel := range missing {
					_, _ = fmt.Fprintf(os.Stderr, "missing: %s\n", rel)
				}

				return fmt.Errorf("%d files missing from %s", len(missing), cfg.Paths.Dest)
			}

			_, _ = fmt.Fprintf(os.Stdout, "asset set in %s is complete\n", cfg.Paths.Dest)

			return nil
		},
	}

	return cmd
}
