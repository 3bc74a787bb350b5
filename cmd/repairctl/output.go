package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"repairdesk/internal/app/service"

	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validFormat(f string) bool {
	return f == formatTable || f == formatJSON || f == formatYAML
}

// printTable выводит таблицу заявок роли
func (c *cli) printTable(w io.Writer, t *service.Table) error {
	if c.output != formatTable {
		return encode(w, c.output, t)
	}

	fmt.Fprintf(w, "%s (%s: %s)\n\n", t.Title, c.session.Policy.Label, c.session.FIO)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Cells
	}
	return writeTabular(w, t.Headers, rows)
}

// printList выводит справочник: таблицей или исходными структурами
func (c *cli) printList(w io.Writer, headers []string, rows [][]string, v interface{}) error {
	if c.output != formatTable {
		return encode(w, c.output, v)
	}
	return writeTabular(w, headers, rows)
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTabular(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
