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
	chestCmd.AddCommand(chestOpenCmd)
	rootCmd.AddCommand(chestCmd)
}

var chestCmd = &cobra.Command{
	Use:   "chest",
	Short: "List unopened loot chests",
	RunE:  runChestList,
}

var chestOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a chest and claim its reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runChestOpen,
}

func runChestList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Profiles.Snapshot()
	if len(p.Chests) == 0 {
		fmt.Println("No unopened chests. Earn 100+ XP in a day to get one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRARITY")
	for _, c := range p.Chests {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Rarity)
	}
	return w.Flush()
}

func runChestOpen(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id := args[0]
	p := d.Profiles.Snapshot()
	idx := p.ChestByID(id)
	if idx < 0 {
		return domain.ErrUnknownChest
	}

	reward, err := d.Chests.Open(p.Chests[idx].Rarity)
	if err != nil {
		return err
	}
	if err := d.Chests.Claim(id, reward); err != nil {
		return err
	}

	switch reward.Kind {
	case domain.RewardCoins:
		fmt.Printf("You got %d coins!\n", reward.Coins)
	case domain.RewardFreeze:
		fmt.Println("You got a streak freeze!")
	case domain.RewardGoldenBuff:
		fmt.Println("You got a golden buff: double XP for 24 hours!")
	}
	return nil
}
