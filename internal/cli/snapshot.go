package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all state to a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all state from a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := d.Snaps.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return err
	}
	fmt.Printf("Exported snapshot to %s (%d bytes)\n", args[0], len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := d.Snaps.Import(data); err != nil {
		return err
	}
	fmt.Println("Snapshot imported.")
	return nil
}
