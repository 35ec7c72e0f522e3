package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/nhle/timely/internal/model"
)

// Output formats accepted by -o.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// printer renders records in the selected output format.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return &printer{w: w, format: format}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

// encode writes v as JSON or YAML. It reports false for table output.
func (p *printer) encode(v any) (bool, error) {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) tasks(tasks []model.Task) error {
	if done, err := p.encode(tasks); done {
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tORDER\tTITLE\tTAGS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.Status, formatOrder(t.Order), t.Title, strings.Join(t.Tags, ","))
	}
	return tw.Flush()
}

func (p *printer) task(t *model.Task) error {
	if done, err := p.encode(t); done {
		return err
	}

	description := "-"
	if t.Description != nil && *t.Description != "" {
		description = *t.Description
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	fmt.Fprintf(tw, "Order:\t%s\n", formatOrder(t.Order))
	fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(t.Tags, ", "))
	fmt.Fprintf(tw, "Description:\t%s\n", description)
	return tw.Flush()
}

func (p *printer) events(events []model.Event) error {
	if done, err := p.encode(events); done {
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tEND\tALL DAY\tTASK\tTITLE")
	for _, e := range events {
		task := "-"
		if e.TaskID != nil {
			task = strconv.FormatInt(*e.TaskID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\n",
			e.ID, e.Start, e.End, e.AllDay, task, e.Title)
	}
	return tw.Flush()
}

func (p *printer) event(e *model.Event) error {
	if done, err := p.encode(e); done {
		return err
	}
	return p.events([]model.Event{*e})
}

func formatOrder(order float64) string {
	return strconv.FormatFloat(order, 'g', -1, 64)
}
