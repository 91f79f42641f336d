package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/meridian-diagrams/meridian/internal/version"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "meridian",
		Short: "Render Mermaid-subset diagrams to ASCII/Unicode art",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a theme YAML file")
	cmd.AddCommand(newRenderCmd(&configPath))
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newWatchCmd(&configPath))
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(version.Version())
			return nil
		},
	}
}

// correlationID returns a fresh random id. The mcp tool handlers take one per tool invocation
// and prefix their error results with it.
func correlationID() string {
	return uuid.New().String()
}
