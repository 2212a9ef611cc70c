package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current progression profile",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	// Settle any pending rollover so the numbers shown are current.
	d.Tick()

	p := d.Profiles.Snapshot()
	idx, rank := d.XP.Rank()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Rank\t%s (#%d)\n", rank.Title, idx+1)
	fmt.Fprintf(w, "XP\t%d\n", p.XP)
	fmt.Fprintf(w, "Today's XP\t%d\n", p.DailyXP)
	fmt.Fprintf(w, "Coins\t%d\n", p.Coins)
	fmt.Fprintf(w, "Streak\t%d days\n", p.Streak)
	fmt.Fprintf(w, "Freeze\t%s\n", yesNo(p.HasFreeze))
	if p.GoldenBuffActive(time.Now()) {
		until := time.Unix(p.GoldenBuffExpires, 0)
		fmt.Fprintf(w, "Golden buff\tactive until %s\n", until.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(w, "Golden buff\tinactive\n")
	}
	fmt.Fprintf(w, "Chests\t%d unopened\n", len(p.Chests))
	if err := w.Flush(); err != nil {
		return err
	}

	if pendingIdx, ok := d.XP.CheckRankUp(); ok {
		fmt.Printf("\nRank up! You reached %s. Run 'questforge rank ack' to dismiss.\n",
			rankName(pendingIdx))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
