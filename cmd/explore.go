package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/curio/internal/app"
	"github.com/abhisek/curio/internal/client"
	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [query]",
	Short: "Ask open questions and follow the threads",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		plain, _ := cmd.Flags().GetBool("plain")
		if !plain {
			return runApp(cmd, app.Options{Mode: app.ModeExplore, Query: query})
		}

		if strings.TrimSpace(query) == "" {
			return errors.New("--plain needs a query")
		}
		age, _ := cmd.Flags().GetInt("age")
		if age == 0 {
			age = storedAge(cmd)
		}
		c := client.New(resolveServerURL(cmd))
		return streamPlain(cmd, c, query, problemgen.UserContext{Age: age}, cmd.OutOrStdout())
	},
}

func init() {
	exploreCmd.Flags().Bool("plain", false, "Print the answer to stdout instead of opening the TUI")
	exploreCmd.Flags().Int("age", 0, "Learner age for --plain (defaults to the saved profile)")
}

// storedAge returns the saved profile age, or zero when there is none.
func storedAge(cmd *cobra.Command) int {
	st, err := openStore(cmd)
	if err != nil {
		return 0
	}
	defer st.Close()
	p, err := st.ProfileRepo().Get(cmd.Context())
	if err != nil || p == nil {
		return 0
	}
	return p.Age
}

// streamPlain prints streamed text as it grows, then the suggestions.
func streamPlain(cmd *cobra.Command, c *client.Client, query string, uc problemgen.UserContext, w io.Writer) error {
	var conv explore.Conversation
	conv.Ask(query, time.Now())

	printed := ""
	err := c.StreamExplore(cmd.Context(), query, uc, func(chunk explore.StreamChunk) {
		conv.Apply(chunk)
		if chunk.Text == nil {
			return
		}
		text := *chunk.Text
		if strings.HasPrefix(text, printed) {
			fmt.Fprint(w, text[len(printed):])
		} else {
			fmt.Fprint(w, "\n"+text)
		}
		printed = text
	})
	fmt.Fprintln(w)
	if errors.Is(err, client.ErrRateLimited) {
		return errors.New("too many requests, try again in a minute")
	}
	if err != nil {
		return err
	}

	latest, ok := conv.Latest()
	if !ok {
		return nil
	}
	if len(latest.Topics) > 0 {
		fmt.Fprintln(w, "\nRelated topics:")
		for _, t := range latest.Topics {
			fmt.Fprintf(w, "  # %s (%s)\n", t.Topic, t.Type)
		}
	}
	if len(latest.Questions) > 0 {
		fmt.Fprintln(w, "\nKeep exploring:")
		for _, q := range latest.Questions {
			fmt.Fprintf(w, "  ? %s\n", q.Question)
		}
	}
	return nil
}
