package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tuxgo/tuxgo/internal/video"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Print the desktop mode and the window the configuration asks for",
	RunE:  runModes,
}

func runModes(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	plat, err := openPlatform(cfg.Video.Backend)
	if err != nil {
		return fmt.Errorf("video backend: %w", err)
	}
	defer plat.close()

	desktop, err := plat.backend.DesktopDisplayMode()
	if err != nil {
		return fmt.Errorf("desktop display mode: %w", err)
	}
	mgr := video.NewManager(plat.backend, &cfg.Video, log)

	fmt.Printf("Backend:  %s\n", plat.backend.Name())
	fmt.Printf("Desktop:  %s\n", desktop)
	fmt.Println()

	spec := mgr.Spec(video.FlagOpenGL)
	fmt.Printf("  %-12s %s\n", "Size", spec.Size)
	fmt.Printf("  %-12s %s\n", "Flags", spec.Flags)
	if cfg.Video.UseFullscreen && !cfg.Video.FullscreenSize.IsZero() {
		mode := video.DisplayMode{
			Width:       cfg.Video.FullscreenSize.Width,
			Height:      cfg.Video.FullscreenSize.Height,
			RefreshRate: cfg.Video.FullscreenRefreshRate,
			Format:      video.PixelFormatRGB888,
		}
		fmt.Printf("  %-12s %s\n", "Mode", mode)
	}
	return nil
}
