package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tuxgo/tuxgo/internal/persist"
	"github.com/tuxgo/tuxgo/internal/savegame"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	RunE:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete the named slot")
}

func runSaves(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := persist.OpenSaveStore(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	defer store.Close()
	saves := savegame.NewManager(store, log)

	if flagDeleteSlot != "" {
		if err := saves.Delete(ctx, flagDeleteSlot); err != nil {
			return fmt.Errorf("delete %s: %w", flagDeleteSlot, err)
		}
		fmt.Printf("Deleted %s.\n", flagDeleteSlot)
		return nil
	}

	list, err := saves.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No saves.")
		return nil
	}

	maxLen := len("Slot")
	for _, s := range list {
		if len(s.Slot) > maxLen {
			maxLen = len(s.Slot)
		}
	}
	fmt.Printf("  %-*s  %s\n", maxLen, "Slot", "Saved")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----")
	for _, s := range list {
		fmt.Printf("  %-*s  %s\n", maxLen, s.Slot, s.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
