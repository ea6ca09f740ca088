package main

import (
	"fmt"

	"github.com/smasonuk/vector3d"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene]",
	Short: "Display information about a scene file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := vector3d.LoadConfig(configPath)
	if err != nil {
		return err
	}
	v, err := vector3d.LoadSceneFile(args[0], cfg)
	if err != nil {
		return err
	}

	fmt.Println("Scene Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Screen: %.0fx%.0f, zscale %.1f, min z %.0f\n\n",
		v.Projection.Width, v.Projection.Height, v.Projection.ZScale, v.Projection.MinZ)

	fmt.Println("Angle sets:")
	for _, a := range v.AngleSets {
		marker := ""
		if a == v.Angles {
			marker = " (viewer)"
		}
		fmt.Printf("  %s%s: base %v, rotate %v\n", a.Name, marker, a.Base, a.Rotate)
	}

	fmt.Printf("\nPriority bands: %v\n\n", v.Priorities())

	fmt.Println("Objects:")
	for _, o := range v.Objects {
		angles := "-"
		if o.Angles != nil {
			angles = o.Angles.Name
		}
		fmt.Printf("  %-16s %-6s prio %d, %d nodes, %d surfaces, angles %s, min shade %.2f\n",
			o.Name, o.Kind, o.Priority, o.NodeCount(), len(o.Surfaces), angles, o.MinShade)
	}

	if v.Rig != nil {
		fmt.Printf("\nPosition rig: %s at %v, %d objects\n", v.Rig.Name, v.Rig.Position, len(v.Rig.Objects()))
	}
	if v.Ground != nil {
		fmt.Printf("Ground: %s, %d bands\n", v.Ground.Name, v.GroundCfg.Bands)
	}
	return nil
}
