package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

func init() {
	storeCmd.AddCommand(storeBuyCmd)
	storeCmd.AddCommand(storeHistoryCmd)
	rootCmd.AddCommand(storeCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse the coin store",
	RunE:  runStoreCatalog,
}

var storeBuyCmd = &cobra.Command{
	Use:   "buy <item name>",
	Short: "Buy a store item",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreBuy,
}

var storeHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent purchases",
	RunE:  runStoreHistory,
}

func runStoreCatalog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Printf("Balance: %d coins\n\n", d.Profiles.Snapshot().Coins)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tCOST\tCATEGORY")
	for _, it := range domain.StoreCatalog() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", it.Name, it.Cost, it.Category)
	}
	return w.Flush()
}

func runStoreBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	name := strings.Join(args, " ")

	var entry domain.PurchaseEntry
	switch name {
	case "Streak Freeze":
		entry, err = d.Ledger.BuyFreeze()
	case "Golden Day":
		entry, err = d.Ledger.BuyGoldenDay()
	default:
		entry, err = d.Ledger.Purchase(name)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Bought %s for %d coins. Balance: %d\n",
		entry.ItemName, entry.Cost, d.Profiles.Snapshot().Coins)
	return nil
}

func runStoreHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Ledger.History(0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No purchases yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tITEM\tCOST\tCATEGORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Date, e.ItemName, e.Cost, e.Category)
	}
	return w.Flush()
}
