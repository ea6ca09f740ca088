package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vector3d",
	Short: "Real-time flat shaded 3D vector viewer",
	Long: `vector3d renders scenes of rigid polygon objects with light shading,
depth ordered drawing and an endless shaded ground plane. Scenes are YAML
files; viewer settings come from an optional TOML config.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "viewer config file (TOML)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
