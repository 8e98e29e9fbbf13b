package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	if len(headers) > 0 {
		for i, h := range headers {
			headers[i] = bold(h)
		}
		tbl.AddRow(headers...)
	}
	return tbl
}

func printTable(w io.Writer, tbl *uitable.Table) {
	_, _ = fmt.Fprintln(w, tbl)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func check(ok bool) string {
	if ok {
		return green("✓")
	}
	return faint("·")
}

func weekString(days [7]bool) string {
	letters := [7]string{"S", "M", "T", "W", "T", "F", "S"}
	parts := make([]string, 7)
	for i, l := range letters {
		if days[i] {
			parts[i] = green(l)
		} else {
			parts[i] = faint(l)
		}
	}
	return strings.Join(parts, " ")
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("Mon Jan 2 15:04")
}
