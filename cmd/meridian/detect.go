package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-diagrams/meridian/orchestrator"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Report which plugin would handle diagram source, and at what confidence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			name, score, err := orchestrator.Default().Detect(src)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (confidence %.2f)\n", name, score)
			return err
		},
	}
}
