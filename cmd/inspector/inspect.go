package main

import (
	"github.com/spf13/cobra"

	"selector-inspector/internal/bootstrap"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Open a browser with the hover overlay and an interactive console",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := bootstrap.NewApp()
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}
}
