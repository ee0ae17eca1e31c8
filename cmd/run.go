package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/curio/internal/app"
	"github.com/abhisek/curio/internal/client"
	"github.com/abhisek/curio/internal/screens/home"
	"github.com/abhisek/curio/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// opts carries the start mode; everything else is filled in here.
func runApp(cmd *cobra.Command, opts app.Options) error {
	ctx := cmd.Context()

	sessionCfg, err := session.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("session config: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	profiles := st.ProfileRepo()
	profile, err := profiles.Get(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		opts.Age = profile.Age
	}

	serverURL := resolveServerURL(cmd)
	c := client.New(serverURL)
	opts.Home = home.Deps{
		Loader:    c,
		Streamer:  c,
		Profiles:  profiles,
		Session:   sessionCfg,
		Health:    c.Health,
		ServerURL: serverURL,
	}

	return app.Run(ctx, opts)
}
