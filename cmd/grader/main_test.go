package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
)

const bhiwandiYAML = `
name: Bhiwandi DC
address: Industrial Estate, Bhiwandi, Maharashtra 421302
warehouse_size: 100000
plot_area: "150000"
construction_type: RCC
eaves_height: 34
number_of_docks: 35
lmv_circulation: 8000
hmv_circulation: 7000
parking_spaces: 20
`

const batchYAML = `
- name: Pune Shed
  address: Industrial Zone, Pune, Maharashtra 411019
  warehouse_size: 200000
  number_of_docks: 4
- name: Bhiwandi DC
  address: Industrial Estate, Bhiwandi, Maharashtra 421302
  warehouse_size: 100000
  construction_type: RCC
  eaves_height: 34
  number_of_docks: 35
  lmv_circulation: 8000
  hmv_circulation: 7000
- name: Nagpur Godown
  address: Warehouse Complex, Nagpur, Maharashtra 440001
  warehouse_size: 100000
  eaves_height: 16
  number_of_docks: 5
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func defaultService(t *testing.T) *evaluation.Service {
	t.Helper()
	svc, err := (&options{}).service()
	require.NoError(t, err)
	return svc
}

func TestRunGrade_Text(t *testing.T) {
	path := writeFile(t, "spec.yaml", bhiwandiYAML)

	var buf bytes.Buffer
	require.NoError(t, runGrade(context.Background(), &buf, defaultService(t), "Food & Beverage", path, false))

	out := buf.String()
	assert.Contains(t, out, "Bhiwandi DC (Food & Beverage)")
	assert.Contains(t, out, "Grade: 76%")
	assert.Contains(t, out, "RCC construction ensures structural integrity")
	assert.Contains(t, out, "+ Strong performer with minor areas for optimization")
	assert.Contains(t, out, "3.5 docks per 10k sq ft, 66.7% plot utilization, 15.0% circulation")
}

func TestRunGrade_JSON(t *testing.T) {
	path := writeFile(t, "spec.yaml", bhiwandiYAML)

	var buf bytes.Buffer
	require.NoError(t, runGrade(context.Background(), &buf, defaultService(t), "Food & Beverage", path, true))

	var got gradeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 76, got.Analysis.Grade)
	assert.Equal(t, "#F59E0B", got.Report.Color)
	assert.Len(t, got.Report.Chart, 5)
}

func TestRunGrade_Errors(t *testing.T) {
	path := writeFile(t, "spec.yaml", bhiwandiYAML)
	svc := defaultService(t)

	err := runGrade(context.Background(), &bytes.Buffer{}, svc, "Textiles", path, false)
	assert.ErrorIs(t, err, evaluation.ErrUnknownBusinessType)

	err = runGrade(context.Background(), &bytes.Buffer{}, svc, "Food & Beverage", filepath.Join(t.TempDir(), "none.yaml"), false)
	assert.Error(t, err)
}

func TestRunBatch_RanksBestFirst(t *testing.T) {
	path := writeFile(t, "specs.yaml", batchYAML)

	var buf bytes.Buffer
	require.NoError(t, runBatch(context.Background(), &buf, defaultService(t), "E-commerce/General Storage", path, true))

	var got []rankedOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Bhiwandi DC", got[0].Name)
	assert.Equal(t, "Pune Shed", got[1].Name)
	assert.Equal(t, 65, got[1].Grade)
	assert.Equal(t, "Nagpur Godown", got[2].Name)
	assert.Equal(t, 3, got[2].Rank)
}

func TestRunBatch_Table(t *testing.T) {
	path := writeFile(t, "specs.yaml", batchYAML)

	var buf bytes.Buffer
	require.NoError(t, runBatch(context.Background(), &buf, defaultService(t), "E-commerce/General Storage", path, false))

	out := buf.String()
	bhiwandi := strings.Index(out, "Bhiwandi DC")
	pune := strings.Index(out, "Pune Shed")
	nagpur := strings.Index(out, "Nagpur Godown")
	require.True(t, bhiwandi >= 0 && pune >= 0 && nagpur >= 0, out)
	assert.Less(t, bhiwandi, pune)
	assert.Less(t, pune, nagpur)
	assert.Contains(t, out, "65%")
	assert.Contains(t, out, "Industrial Zone, Pune, Maharashtra 411019")
}

func TestRunBatch_Incomplete(t *testing.T) {
	path := writeFile(t, "specs.yaml", "- name: Unnamed Plot\n  warehouse_size: 1000\n")

	err := runBatch(context.Background(), &bytes.Buffer{}, defaultService(t), "Automotive Parts", path, false)
	assert.ErrorIs(t, err, evaluation.ErrIncompleteProperty)

	empty := writeFile(t, "empty.yaml", "[]\n")
	assert.Error(t, runBatch(context.Background(), &bytes.Buffer{}, defaultService(t), "Automotive Parts", empty, false))
}

func TestRootCmd_Templates(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"templates", "--json"})
	require.NoError(t, cmd.Execute())

	var got []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 4)
	assert.Equal(t, "Food & Beverage", got[0].Name)
}

func TestRootCmd_TemplatesText(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"templates"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Pharmaceuticals")
	assert.Contains(t, buf.String(), "Temperature mapping, humidity control")
}

func TestRootCmd_GradeRequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"grade", "--type", "Pharmaceuticals"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_CustomCatalog(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", `
templates:
  - name: Cold Storage
    parameters:
      - name: Storage Capacity
        ai_weight: 100
        score: 6
`)
	specPath := writeFile(t, "spec.yaml", "name: Tall Shed\naddress: Pune\neaves_height: 34\n")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--catalog", catalogPath, "grade", "--type", "Cold Storage", "--spec", specPath, "--json"})
	require.NoError(t, cmd.Execute())

	var got gradeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 75, got.Analysis.Grade)

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", filepath.Join(t.TempDir(), "missing.yaml"), "templates"})
	assert.Error(t, cmd.Execute())
}
