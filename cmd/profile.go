package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/curio/internal/screens/welcome"
	"github.com/abhisek/curio/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.ProfileRepo().Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		out := cmd.OutOrStdout()
		if p == nil {
			fmt.Fprintln(out, "No profile saved. Run curio to set one up.")
			return nil
		}
		fmt.Fprintf(out, "Age:      %d\n", p.Age)
		fmt.Fprintf(out, "Updated:  %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

var profileSetAgeCmd = &cobra.Command{
	Use:   "set-age <age>",
	Short: "Save the learner's age",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid age %q: %w", args[0], err)
		}
		if age < welcome.MinAge || age > welcome.MaxAge {
			return fmt.Errorf("age must be between %d and %d", welcome.MinAge, welcome.MaxAge)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProfileRepo().Save(cmd.Context(), store.Profile{Age: age, UpdatedAt: time.Now()}); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved age %d.\n", age)
		return nil
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProfileRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared.")
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetAgeCmd)
	profileCmd.AddCommand(profileClearCmd)
}
