package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	"github.com/denisok6893-rgb/warehouse-grading/internal/report"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

type gradeOutput struct {
	Analysis domain.GradeAnalysis `json:"analysis"`
	Report   report.Report        `json:"report"`
}

type rankedOutput struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Grade   int    `json:"grade"`
}

func runTemplates(w io.Writer, svc *evaluation.Service, asJSON bool) error {
	type templateOutput struct {
		Name       string             `json:"name"`
		Parameters []domain.Parameter `json:"parameters"`
	}

	var out []templateOutput
	for _, name := range svc.BusinessTypes() {
		params, _ := svc.Template(name)
		out = append(out, templateOutput{Name: name, Parameters: params})
	}
	if asJSON {
		return writeJSON(w, out)
	}

	for _, t := range out {
		fmt.Fprintln(w, color.New(color.Bold).Sprint(t.Name))
		rows := make([][]string, 0, len(t.Parameters))
		for _, p := range t.Parameters {
			rows = append(rows, []string{
				p.Name,
				fmt.Sprintf("%d%%", p.AIWeight),
				fmt.Sprintf("%.0f/%.0f", p.Score, p.MaxScore),
				p.Description,
			})
		}
		if err := renderTable(w, []string{"Parameter", "AI Weight", "Score", "Description"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func runGrade(ctx context.Context, w io.Writer, svc *evaluation.Service, businessType, specPath string, asJSON bool) error {
	spec, err := storage.LoadSpecificationFromFile(specPath)
	if err != nil {
		return err
	}

	a, err := svc.Evaluate(ctx, evaluation.Request{BusinessType: businessType, Spec: spec})
	if err != nil {
		return err
	}
	rep := report.Build(spec, a)
	if asJSON {
		return writeJSON(w, gradeOutput{Analysis: a, Report: rep})
	}

	title := businessType
	if spec.Name != "" {
		title = spec.Name + " (" + businessType + ")"
	}
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
	fmt.Fprintf(w, "Grade: %s\n\n", colorGrade(a.Grade))

	rows := make([][]string, 0, len(a.AdjustedParams))
	for _, p := range a.AdjustedParams {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d", p.UserWeight),
			fmt.Sprintf("%.1f/%.0f", p.Score, p.MaxScore),
			strings.Join(p.AdjustmentReasons, "; "),
		})
	}
	if err := renderTable(w, []string{"Parameter", "Weight", "Score", "Adjustments"}, rows); err != nil {
		return err
	}

	if len(a.Insights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, in := range a.Insights {
			fmt.Fprintf(w, "  %s %s\n", insightMark(in.Type), in.Text)
		}
	}

	if line := metricsLine(rep.Metrics); line != "" {
		fmt.Fprintf(w, "\nKey metrics: %s\n", line)
	}
	return nil
}

// runBatch saves every specification into the service's store and prints them
// best first.
func runBatch(ctx context.Context, w io.Writer, svc *evaluation.Service, businessType, specsPath string, asJSON bool) error {
	specs, err := storage.LoadSpecificationsFromFile(specsPath)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("%s: no specifications", specsPath)
	}

	for i, spec := range specs {
		if _, err := svc.Save(ctx, evaluation.Request{BusinessType: businessType, Spec: spec}); err != nil {
			return fmt.Errorf("specification %d (%q): %w", i+1, spec.Name, err)
		}
	}

	var items []domain.EvaluatedProperty
	for {
		page, total, err := svc.List(ctx, storage.Filter{
			BusinessType: businessType,
			Sort:         storage.SortGradeDesc,
			Limit:        200,
			Offset:       len(items),
		})
		if err != nil {
			return err
		}
		items = append(items, page...)
		if len(page) == 0 || len(items) >= total {
			break
		}
	}

	out := make([]rankedOutput, 0, len(items))
	for i, p := range items {
		out = append(out, rankedOutput{Rank: i + 1, Name: p.Spec.Name, Address: p.Spec.Address, Grade: p.Analysis.Grade})
	}
	if asJSON {
		return writeJSON(w, out)
	}

	rows := make([][]string, 0, len(out))
	for _, r := range out {
		rows = append(rows, []string{fmt.Sprintf("%d", r.Rank), r.Name, colorGrade(r.Grade), r.Address})
	}
	return renderTable(w, []string{"Rank", "Name", "Grade", "Address"}, rows)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// colorGrade uses the same bands as the dashboard colours.
func colorGrade(grade int) string {
	s := fmt.Sprintf("%d%%", grade)
	switch report.GradeColor(grade) {
	case report.ColorStrong:
		return color.GreenString(s)
	case report.ColorAdequate:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func insightMark(t domain.InsightType) string {
	switch t {
	case domain.InsightPositive:
		return color.GreenString("+")
	case domain.InsightWarning:
		return color.YellowString("!")
	default:
		return color.RedString("-")
	}
}

func metricsLine(km report.KeyMetrics) string {
	var parts []string
	if km.DocksPer10K != nil {
		parts = append(parts, fmt.Sprintf("%.1f docks per 10k sq ft", *km.DocksPer10K))
	}
	if km.PlotUtilization != nil {
		parts = append(parts, fmt.Sprintf("%.1f%% plot utilization", *km.PlotUtilization))
	}
	if km.CirculationRatio != nil {
		parts = append(parts, fmt.Sprintf("%.1f%% circulation", *km.CirculationRatio))
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
