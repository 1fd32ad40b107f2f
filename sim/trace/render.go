package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects how a trace is written.
type Format string

const (
	// FormatTuple writes one "tick [recent_cpu] [priorities] label" line per quantum.
	FormatTuple Format = "tuple"
	// FormatTable writes an aligned table with one row per quantum.
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var validFormats = map[Format]bool{
	FormatTuple: true,
	FormatTable: true,
	FormatJSON:  true,
	FormatYAML:  true,
	"":          true, // empty defaults to tuple
}

// IsValidFormat returns true if the given format string is a recognized output format.
func IsValidFormat(format string) bool {
	return validFormats[Format(format)]
}

// Render writes the trace to w in the given format.
func Render(w io.Writer, format Format, pt *PredictionTrace) error {
	switch format {
	case "", FormatTuple:
		for _, q := range pt.Quanta {
			if _, err := fmt.Fprintln(w, TupleLine(q)); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		renderTable(w, pt)
		return nil
	case FormatJSON:
		return writeJSON(w, pt)
	case FormatYAML:
		return writeYAML(w, pt)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Report is the single document written for structured formats when a
// summary accompanies the trace.
type Report struct {
	Trace   *PredictionTrace `json:"trace" yaml:"trace"`
	Summary *TraceSummary    `json:"summary" yaml:"summary"`
}

// RenderWithSummary writes the trace followed by its summary. Text formats
// print the summary block after the trace; json and yaml write one Report
// document so the output stays parseable.
func RenderWithSummary(w io.Writer, format Format, pt *PredictionTrace) error {
	report := Report{Trace: pt, Summary: Summarize(pt)}
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	}
	if err := Render(w, format, pt); err != nil {
		return err
	}
	return RenderSummary(w, format, report.Summary)
}

// RenderSummary writes the summary to w. Tuple and table formats share a
// plain-text rendering.
func RenderSummary(w io.Writer, format Format, s *TraceSummary) error {
	switch format {
	case "", FormatTuple, FormatTable:
		fmt.Fprintln(w, "=== Prediction Summary ===")
		fmt.Fprintf(w, "Quanta               : %d\n", s.TotalQuanta)
		fmt.Fprintf(w, "Overrides            : %d (%d changed the pick)\n", s.OverrideCount, s.OverridesChanged)
		fmt.Fprintf(w, "Override priority gap: mean %.2f, max %d\n", s.MeanPriorityGap, s.MaxPriorityGap)
		labels := make([]string, 0, len(s.RunDistribution))
		for l := range s.RunDistribution {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Fprintf(w, "Ran %-17s: %d\n", l, s.RunDistribution[l])
		}
		return nil
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// TupleLine formats a record as "tick [recent_cpu] [priorities] label".
func TupleLine(q QuantumRecord) string {
	return fmt.Sprintf("%d %s %s %s", q.Tick, FormatVector(q.RecentCPU), FormatVector(q.Priorities), q.Label)
}

// FormatVector renders values as "[a b c]" with every element right-aligned
// to the widest one, e.g. [13  9 10].
func FormatVector(values []int) string {
	cells := make([]string, len(values))
	width := 0
	for i, v := range values {
		cells[i] = strconv.Itoa(v)
		if len(cells[i]) > width {
			width = len(cells[i])
		}
	}
	for i, c := range cells {
		cells[i] = strings.Repeat(" ", width-len(c)) + c
	}
	return "[" + strings.Join(cells, " ") + "]"
}

func renderTable(w io.Writer, pt *PredictionTrace) {
	header := []string{"tick"}
	for _, l := range pt.Config.Labels {
		header = append(header, "recent_cpu "+l)
	}
	for _, l := range pt.Config.Labels {
		header = append(header, "priority "+l)
	}
	header = append(header, "run")

	rows := make([][]string, 0, len(pt.Quanta))
	for _, q := range pt.Quanta {
		row := []string{strconv.Itoa(q.Tick)}
		for _, rc := range q.RecentCPU {
			row = append(row, strconv.Itoa(rc))
		}
		for _, p := range q.Priorities {
			row = append(row, strconv.Itoa(p))
		}
		run := q.Label
		if q.Overridden {
			run += "*"
		}
		rows = append(rows, append(row, run))
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
