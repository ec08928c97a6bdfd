package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

// report is the printable summary of one analysis.
type report struct {
	Archetype string        `json:"archetype" yaml:"archetype"`
	Database  string        `json:"database" yaml:"database"`
	Reasoning string        `json:"reasoning" yaml:"reasoning"`
	Tables    []tableReport `json:"tables" yaml:"tables"`
	Endpoints int           `json:"endpoints" yaml:"endpoints"`
	Message   string        `json:"message" yaml:"message"`

	Advice      *advisor.BackendAnalysis `json:"advice,omitempty" yaml:"advice,omitempty"`
	AdviceError string                   `json:"adviceError,omitempty" yaml:"adviceError,omitempty"`
}

type tableReport struct {
	Name          string   `json:"name" yaml:"name"`
	Fields        []string `json:"fields" yaml:"fields"`
	Relationships []string `json:"relationships" yaml:"relationships"`
	Indexes       []string `json:"indexes" yaml:"indexes"`
}

func newReport(result schemagen.Result) report {
	r := report{
		Archetype: result.Analysis.Archetype,
		Database:  string(result.Database.Type),
		Reasoning: result.Database.Reasoning,
		Tables:    make([]tableReport, 0, len(result.Schema)),
		Endpoints: len(result.Endpoints),
		Message:   result.Message,
	}
	for _, t := range result.Schema {
		r.Tables = append(r.Tables, newTableReport(t))
	}
	return r
}

func newTableReport(t domain.TableSchema) tableReport {
	tr := tableReport{
		Name:          t.Name,
		Fields:        make([]string, 0, len(t.Fields)),
		Relationships: make([]string, 0, len(t.Relationships)),
		Indexes:       make([]string, 0, len(t.Indexes)),
	}
	for _, f := range t.Fields {
		tr.Fields = append(tr.Fields, fmt.Sprintf("%s:%s", f.Name, f.Type))
	}
	for _, rel := range t.Relationships {
		tr.Relationships = append(tr.Relationships, fmt.Sprintf("%s → %s", rel.Type, rel.TargetTable))
	}
	for _, idx := range t.Indexes {
		tr.Indexes = append(tr.Indexes, idx.Name)
	}
	return tr
}

// writeReport renders r as a table, JSON or YAML.
func writeReport(w io.Writer, r report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		writeTables(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func writeTables(w io.Writer, r report) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintf(w, "📐 %s backend on %s\n", r.Archetype, r.Database)
	fmt.Fprintln(w, r.Reasoning)
	fmt.Fprintln(w)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Table", "Fields", "Relationships", "Indexes"})
	for _, t := range r.Tables {
		tw.AppendRow(table.Row{
			text.FgGreen.Sprint(t.Name),
			strings.Join(t.Fields, "\n"),
			strings.Join(t.Relationships, "\n"),
			strings.Join(t.Indexes, "\n"),
		})
		tw.AppendSeparator()
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d tables", len(r.Tables)), fmt.Sprintf("%d endpoints", r.Endpoints), "", ""})
	tw.Render()

	if r.Advice == nil {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "🧠 Advice")
	if r.AdviceError != "" {
		color.New(color.FgYellow).Fprintf(w, "⚠️  Some answers are fallbacks: %s\n", r.AdviceError)
	}

	at := table.NewWriter()
	at.SetOutputMirror(w)
	at.SetStyle(table.StyleRounded)
	at.AppendHeader(table.Row{"Area", "Title", "Priority"})
	for _, s := range r.Advice.SecurityRecommendations {
		at.AppendRow(table.Row{"security", s.Title, priority(s.Priority)})
	}
	for _, s := range r.Advice.SmartRecommendations {
		at.AppendRow(table.Row{"architecture", s.Title, priority(s.Priority)})
	}
	for _, s := range r.Advice.OptimizationSuggestions {
		at.AppendRow(table.Row{"optimization", s.Title, priority(s.Impact)})
	}
	at.AppendFooter(table.Row{"database", r.Advice.SelectedDatabase, ""})
	at.Render()
}

func priority(l domain.Level) string {
	switch l {
	case domain.LevelHigh:
		return text.FgRed.Sprint(l)
	case domain.LevelLow:
		return text.FgHiBlack.Sprint(l)
	default:
		return text.FgYellow.Sprint(l)
	}
}
