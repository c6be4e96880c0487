package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/config"
)

func addConfig(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with the defaults unless it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.EnsureFile(o.configDir)
			if err != nil {
				return err
			}
			if created {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cfg.File != "" {
				_, _ = fmt.Fprintln(w, faint("# from "+cfg.File))
			}
			_, _ = w.Write(data)
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}
