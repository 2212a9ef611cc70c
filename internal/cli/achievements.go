package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock dates",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Unlocks.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tUNLOCKED\tDESCRIPTION")
	for _, a := range list {
		unlocked := "—"
		if a.UnlockedOn != "" {
			unlocked = a.UnlockedOn
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, unlocked, a.Desc)
	}
	return w.Flush()
}
