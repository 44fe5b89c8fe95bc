package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func renderCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [page.html]",
		Short: "Augment a page and print the result",
		Long:  `Run a single HTML page through the address and script components and write the result to stdout or --output.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := a.registry().Rewrite(cmd.Context(), in, w); err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page to this file instead of stdout")
	return cmd
}
