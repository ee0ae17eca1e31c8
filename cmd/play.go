package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/curio/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play [topic]",
	Short: "Start a quiz session, optionally on a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{
			Mode:  app.ModePlay,
			Topic: strings.Join(args, " "),
		})
	},
}
