package main

import (
	"log"
	"time"

	"github.com/smasonuk/vector3d"
	"github.com/spf13/cobra"
)

var watch bool

var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Open a window and animate a scene",
	Long:  "Animate the scene until Escape is pressed or the window is closed. Space pauses and resumes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene when the scene or config file changes")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := vector3d.LoadConfig(configPath)
	if err != nil {
		return err
	}
	v, err := vector3d.LoadSceneFile(args[0], cfg)
	if err != nil {
		return err
	}

	g := vector3d.NewGame(v, cfg)
	if watch {
		r, err := vector3d.NewSceneReloader(args[0], configPath, 200*time.Millisecond)
		if err != nil {
			return err
		}
		defer r.Close()
		g.SetReloader(r)
		log.Printf("Watching %s for changes", args[0])
	}
	return vector3d.RunGame(g, cfg)
}
