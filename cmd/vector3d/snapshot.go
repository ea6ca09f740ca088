package main

import (
	"fmt"
	"os"

	"github.com/smasonuk/vector3d"
	"github.com/spf13/cobra"
)

var (
	snapshotOut    string
	snapshotFrames int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [scene]",
	Short: "Render a scene without a window and save it as PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "snapshot.png", "output PNG file")
	snapshotCmd.Flags().IntVarP(&snapshotFrames, "frames", "n", 1, "number of frames to animate before saving")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := vector3d.LoadConfig(configPath)
	if err != nil {
		return err
	}
	v, err := vector3d.LoadSceneFile(args[0], cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(snapshotOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", snapshotOut, err)
	}
	if err := vector3d.Snapshot(cmd.Context(), v, snapshotFrames, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s after %d frames\n", snapshotOut, snapshotFrames)
	return nil
}
