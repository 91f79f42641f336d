package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meridian-diagrams/meridian/internal/config"
	"github.com/meridian-diagrams/meridian/orchestrator"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render diagram source to ASCII/Unicode art",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			theme := cfg.Theme()

			out, err := orchestrator.Render(src)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			useColor := color || theme.Color
			if useColor && !term.IsTerminal(int(os.Stdout.Fd())) {
				useColor = false
			}
			if useColor {
				out = colorize(out)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&color, "color", false, "enable ANSI coloring of box-drawing characters even when the theme disables it (applied only when stdout is a terminal)")
	return cmd
}

func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

// colorize wraps box-drawing characters in a cyan ANSI sequence, leaving labels and
// whitespace untouched.
func colorize(s string) string {
	const (
		start = "\x1b[36m"
		reset = "\x1b[0m"
	)
	boxChars := map[rune]bool{
		'┌': true, '┐': true, '└': true, '┘': true, '─': true, '│': true,
		'┬': true, '┴': true, '├': true, '┤': true, '┼': true,
		'━': true, '┃': true, '╌': true, '╎': true,
	}

	var b []rune
	inRun := false
	for _, r := range s {
		isBox := boxChars[r]
		if isBox && !inRun {
			b = append(b, []rune(start)...)
			inRun = true
		} else if !isBox && inRun {
			b = append(b, []rune(reset)...)
			inRun = false
		}
		b = append(b, r)
	}
	if inRun {
		b = append(b, []rune(reset)...)
	}
	return string(b)
}
