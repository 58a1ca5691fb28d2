package main

import (
	"fmt"
	"os"

	"github.com/richinsley/gomist/params"
	"github.com/spf13/cobra"
)

func newDefaultsCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in preset as JSON",
		Long: "Print the built-in preset as JSON. The output is the format served at " +
			"--defaults-url, so it can seed a new defaults file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := params.Defaults()
			doc, err := d.MarshalPreset()
			if err != nil {
				return err
			}
			doc = append(doc, '\n')
			if out == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(out, doc, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "file", "f", "", "write to this file instead of stdout")
	return cmd
}
