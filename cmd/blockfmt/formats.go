package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/blockfmt/internal/editor"
	"github.com/dshills/blockfmt/internal/heading"
)

func newFormatsCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the configured block formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := editor.Formats(g.cfg)
			def := g.cfg.Heading.Default
			if asJSON {
				return writeFormatsJSON(cmd.OutOrStdout(), formats, def)
			}
			return writeFormatsTable(cmd.OutOrStdout(), formats, def)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the formats as JSON")
	return cmd
}

func writeFormatsJSON(w io.Writer, formats []heading.Format, def string) error {
	out := `{"formats":[]}`
	var err error
	if out, err = sjson.Set(out, "default", def); err != nil {
		return err
	}
	for i, f := range formats {
		prefix := "formats." + strconv.Itoa(i)
		for _, kv := range [][2]string{{"id", f.ID}, {"view", f.ViewTag}, {"label", f.Label}} {
			if out, err = sjson.Set(out, prefix+"."+kv[0], kv[1]); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// writeFormatsTable aligns columns by display width so wide labels line up.
func writeFormatsTable(w io.Writer, formats []heading.Format, def string) error {
	rows := [][]string{{"ID", "VIEW", "LABEL", "DEFAULT"}}
	for _, f := range formats {
		mark := ""
		if f.ID == def {
			mark = "*"
		}
		rows = append(rows, []string{f.ID, f.ViewTag, f.Label, mark})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
	}

	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-uniseg.StringWidth(cell)+2))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
