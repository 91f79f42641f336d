package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/meridian-diagrams/meridian/orchestrator"
)

// treeFormat mirrors the teacher's tree.Format dichotomy: an indented default form and a
// scheme-style S-expression form, applied here to a parsed Database and its LayoutResult instead
// of a DOT concrete syntax tree.
type treeFormat int

const (
	treeDefault treeFormat = iota
	treeScheme
)

func newTreeFormat(s string) (treeFormat, error) {
	switch s {
	case "default", "":
		return treeDefault, nil
	case "scheme":
		return treeScheme, nil
	default:
		return treeDefault, fmt.Errorf("invalid format %q, valid ones are: \"default\", \"scheme\"", s)
	}
}

func newTreeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Dump the parsed database and layout without rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := newTreeFormat(format)
			if err != nil {
				return err
			}
			src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			res, err := orchestrator.Default().Run(src)
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), res, ft)
		},
	}
	cmd.Flags().StringVar(&format, "format", "default", `dump format: "default" or "scheme"`)
	return cmd
}

func writeTree(w io.Writer, res *orchestrator.Result, format treeFormat) error {
	switch format {
	case treeScheme:
		return writeTreeScheme(w, res)
	default:
		return writeTreeDefault(w, res)
	}
}

func writeTreeDefault(w io.Writer, res *orchestrator.Result) error {
	if _, err := fmt.Fprintf(w, "Diagram (%s)\n", res.Plugin); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\tDirection\n\t\t'%s'\n", res.DB.Direction()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\tNodes"); err != nil {
		return err
	}
	for _, n := range res.DB.Nodes() {
		box := res.Layout.Nodes[n.ID]
		if _, err := fmt.Fprintf(w, "\t\tNode '%s' label=%q shape=%s pos=(%d,%d) size=(%d,%d)\n",
			n.ID, n.Label, n.Shape, box.X, box.Y, box.Width, box.Height); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "\tEdges"); err != nil {
		return err
	}
	for _, e := range res.DB.Edges() {
		if _, err := fmt.Fprintf(w, "\t\tEdge '%s' -> '%s' type=%s label=%q\n", e.From, e.To, e.Type, e.Label); err != nil {
			return err
		}
	}
	return nil
}

func writeTreeScheme(w io.Writer, res *orchestrator.Result) error {
	if _, err := fmt.Fprintf(w, "(Diagram (@ %s)\n", res.Plugin); err != nil {
		return err
	}
	for _, n := range res.DB.Nodes() {
		box := res.Layout.Nodes[n.ID]
		if _, err := fmt.Fprintf(w, "  (Node (@ %d %d %d %d) '%s' %q %s)\n",
			box.X, box.Y, box.X+box.Width, box.Y+box.Height, n.ID, n.Label, n.Shape); err != nil {
			return err
		}
	}
	for _, e := range res.DB.Edges() {
		if _, err := fmt.Fprintf(w, "  (Edge '%s' '%s' %s %q)\n", e.From, e.To, e.Type, e.Label); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, ")")
	return err
}
