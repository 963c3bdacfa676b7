package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tuxgo/tuxgo/internal/scripting"
)

var flagExecSteps int

var execCmd = &cobra.Command{
	Use:   "exec FILE [NAME...]",
	Short: "Run a script headless and dump the named globals",
	Long: `Runs FILE in a fresh script engine without opening a window. Script
threads are stepped at the frame rate until they finish or --steps frames
have passed. Each NAME is then printed as a global of the script.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().IntVar(&flagExecSteps, "steps", 10*frameRate, "Maximum frames to step script threads")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	engine, err := scripting.New(cfg.Scripting, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()

	if err := engine.RunFile(args[0]); err != nil {
		return err
	}

	dt := time.Second / frameRate
	for i := 0; i < flagExecSteps && engine.Threads().Len() > 0; i++ {
		engine.Threads().Step(dt)
	}
	if n := engine.Threads().Len(); n > 0 {
		fmt.Printf("-- %d script threads still running\n", n)
	}

	for _, name := range args[1:] {
		fmt.Printf("%s = %s\n", name, scripting.Dump(engine.VM().GetGlobal(name)))
	}
	return nil
}
