package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

func init() {
	rankCmd.AddCommand(rankAckCmd)
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the rank ladder and your position",
	RunE:  runRank,
}

var rankAckCmd = &cobra.Command{
	Use:   "ack",
	Short: "Dismiss a pending rank-up notification",
	RunE:  runRankAck,
}

func runRank(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	current, _ := d.XP.Rank()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTHRESHOLD\t")
	for i, r := range domain.Ranks {
		marker := ""
		if i == current {
			marker = "← you"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Title, r.Threshold, marker)
	}
	return w.Flush()
}

func runRankAck(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	idx, ok := d.XP.CheckRankUp()
	if !ok {
		fmt.Println("No pending rank-up.")
		return nil
	}
	if err := d.XP.AcknowledgeRankUp(idx); err != nil {
		return err
	}
	fmt.Printf("Acknowledged: %s\n", rankName(idx))
	return nil
}

// rankName returns the ladder name for an index, tolerating bad input.
func rankName(idx int) string {
	if idx < 0 || idx >= len(domain.Ranks) {
		return "unknown"
	}
	return domain.Ranks[idx].Title
}
