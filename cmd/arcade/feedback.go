package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crescent-arcade/internal/platform/tui"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

var (
	flagFeedbackKind  string
	flagFeedbackEmail string
	flagFeedbackLimit int
	flagListKind      string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Send or read player feedback",
	Long: `Feedback is stored in the local database (--db).

Kinds: general, game-idea, improvement, bug, other.

Examples:
  arcade feedback send                          # open the form
  arcade feedback send --kind bug "snake froze"
  arcade feedback list --kind game-idea
  arcade feedback stats`,
}

var feedbackSendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send feedback; opens a form when no message is given",
	RunE:  runFeedbackSend,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent feedback",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackList,
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count feedback by kind",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackStats,
}

func init() {
	feedbackSendCmd.Flags().StringVar(&flagFeedbackKind, "kind", "general", "Feedback kind")
	feedbackSendCmd.Flags().StringVar(&flagFeedbackEmail, "email", "", "Optional contact email")
	feedbackListCmd.Flags().StringVar(&flagListKind, "kind", "", "Only show this kind")
	feedbackListCmd.Flags().IntVar(&flagFeedbackLimit, "limit", 20, "Number of entries to show")

	feedbackCmd.AddCommand(feedbackSendCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackStatsCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(app.DBPath)
	if err != nil {
		return nil, fmt.Errorf("could not open feedback database: %w", err)
	}
	return store, nil
}

func runFeedbackSend(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		width := 80
		if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
		}
		saved, err := tui.RunFeedbackForm(store, "tui", width)
		if err != nil {
			return err
		}
		if saved != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Thanks! Saved as %s\n", saved.Ref)
		}
		return nil
	}

	saved, err := store.SaveFeedback(storage.Feedback{
		Kind:    storage.Kind(flagFeedbackKind),
		Message: strings.Join(args, " "),
		Email:   flagFeedbackEmail,
		Source:  "cli",
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Thanks! Saved as %s\n", saved.Ref)
	return nil
}

func runFeedbackList(cmd *cobra.Command, _ []string) error {
	kind := storage.Kind(flagListKind)
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKind, kind)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.RecentFeedback(kind, flagFeedbackLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No feedback yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tSOURCE\tMESSAGE")
	for _, f := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			f.CreatedAt.Local().Format("2006-01-02 15:04"),
			f.Kind,
			f.Source,
			firstLine(f.Message, 60),
		)
	}
	return tw.Flush()
}

func runFeedbackStats(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.FeedbackCounts()
	if err != nil {
		return err
	}

	total := 0
	for _, k := range storage.Kinds {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %d\n", k.Label(), counts[k])
		total += counts[k]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %d\n", "Total", total)
	return nil
}

// firstLine shortens a message to one line of at most n runes.
func firstLine(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
