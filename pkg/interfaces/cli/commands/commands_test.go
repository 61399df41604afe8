package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCalc_JSON(t *testing.T) {
	out, err := run(t, "calc", "--estate", "90000", "--heir", "18:1", "--heir", "12:3", "--format", "json")
	require.NoError(t, err)

	var result struct {
		BaseInitial int64  `json:"base_number_initial"`
		BaseFinal   int64  `json:"base_number_final"`
		Status      string `json:"status"`
		Heirs       []struct {
			Category   string `json:"category"`
			Amount     string `json:"amount"`
			AmountEach string `json:"amount_each"`
		} `json:"heirs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(3), result.BaseInitial)
	assert.Equal(t, int64(9), result.BaseFinal)
	assert.Equal(t, "Indivisibility-corrected", result.Status)
	require.Len(t, result.Heirs, 2)
	assert.Equal(t, "30000.00", result.Heirs[0].Amount)
	assert.Equal(t, "60000.00", result.Heirs[1].Amount)
	assert.Equal(t, "20000.00", result.Heirs[1].AmountEach)
}

func TestCalc_Text(t *testing.T) {
	out, err := run(t, "calc", "--estate", "600", "--heir", "3:1", "--heir", "18:1", "--heir", "21:2")
	require.NoError(t, err)
	assert.Contains(t, out, "FARAID ALLOCATION")
	assert.Contains(t, out, "6 -> 8")
	assert.Contains(t, out, "Increase")
}

func TestCalc_RequestFileAndPrecision(t *testing.T) {
	request := writeFile(t, "estate.yaml", `
name: example
estate: "100"
heirs:
  - {category_id: 18, quantity: 1}
  - {category_id: 12, quantity: 1}
`)
	out, err := run(t, "calc", "--request", request, "--format", "csv", "--precision", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "18,Mother,1,1/3,1,false,33.333,33.333,")
}

func TestCalc_HeirsCSV(t *testing.T) {
	heirs := writeFile(t, "heirs.csv", "category_id,quantity,blocking_reason,status\n1,3,,\n")
	out, err := run(t, "calc", "--estate", "300", "--heirs", heirs, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1,Son,3,Ashobah,3,false,300.00,100.00,")
}

func TestCalc_Audit(t *testing.T) {
	out, err := run(t, "calc", "--estate", "600", "--heir", "3:1", "--heir", "18:1", "--heir", "2:1", "--audit")
	require.NoError(t, err)
	assert.Contains(t, out, "AUDIT TRAIL")
	assert.Contains(t, out, "calculation.started")
	assert.Contains(t, out, "calculation.completed")
	assert.Contains(t, out, "Gharrawain")
}

func TestCalc_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing_estate", []string{"calc", "--heir", "1:1"}, "estate value is required"},
		{"missing_heirs", []string{"calc", "--estate", "100"}, "no heirs given"},
		{"bad_heir_flag", []string{"calc", "--estate", "100", "--heir", "son"}, "expected id:quantity"},
		{"bad_estate", []string{"calc", "--estate", "abc", "--heir", "1:1"}, "INVALID_ESTATE"},
		{"unknown_category", []string{"calc", "--estate", "100", "--heir", "99:1"}, "UNKNOWN_CATEGORY"},
		{"uncertain_heir", []string{"calc", "--estate", "100", "--heir", "1:1::haml"}, "faraid mauquf"},
		{"bad_format", []string{"calc", "--estate", "100", "--heir", "1:1", "--format", "xml"}, "invalid output.format"},
		{"missing_config", []string{"calc", "--config", "/nonexistent/faraid.yaml"}, "failed to read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHeirs_CSV(t *testing.T) {
	out, err := run(t, "heirs", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 26)
	assert.Equal(t, "category_id,name,arabic_name,sex,residuary_weight", lines[0])
}

func TestMauquf(t *testing.T) {
	out, err := run(t, "mauquf", "--estate", "1200", "--heir", "3:1", "--heir", "12:1", "--heir", "1:1::mafqud", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Suspended string `json:"suspended"`
		Certain   []struct {
			Category string `json:"category"`
			Minimum  string `json:"minimum"`
		} `json:"certain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "900.00", result.Suspended)
	require.Len(t, result.Certain, 2)
	assert.Equal(t, "300.00", result.Certain[0].Minimum)
	assert.Equal(t, "0.00", result.Certain[1].Minimum)
}

func TestMunasakhot(t *testing.T) {
	chain := writeFile(t, "chain.yaml", `
estate: "4800"
first_heirs:
  - {category_id: 4, quantity: 1}
  - {category_id: 1, quantity: 2}
second_deceased: 1
second_heirs:
  - {category_id: 18, quantity: 1}
  - {category_id: 7, quantity: 1}
`)
	out, err := run(t, "munasakhot", chain, "--format", "json")
	require.NoError(t, err)

	var result struct {
		CombinedBase int64 `json:"combined_base"`
		Shares       []struct {
			Category string `json:"category"`
			Amount   string `json:"amount"`
		} `json:"shares"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(48), result.CombinedBase)
	require.Len(t, result.Shares, 4)
	assert.Equal(t, "1400.00", result.Shares[3].Amount)
}

func TestGharqa_CSV(t *testing.T) {
	batch := writeFile(t, "problems.csv", `problem,estate,category_id,quantity,blocking_reason,status
father,900,18,1,,
father,900,12,3,,
son,300,1,3,,
`)
	out, err := run(t, "gharqa", batch)
	require.NoError(t, err)
	assert.Contains(t, out, "Problem: father")
	assert.Contains(t, out, "Problem: son")
}

func TestGharqa_ErrorNamesProblem(t *testing.T) {
	batch := writeFile(t, "problems.yaml", `
problems:
  - name: ok
    estate: "100"
    heirs: [{category_id: 1, quantity: 1}]
  - name: broken
    estate: "100"
    heirs: [{category_id: 3, quantity: 1}, {category_id: 4, quantity: 1}]
`)
	_, err := run(t, "gharqa", batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), "CONFLICTING_SPOUSE")
}

func TestConfigShow_EnvOverride(t *testing.T) {
	t.Setenv("FARAID_CURRENCY", "USD")
	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "currency: USD")
	assert.Contains(t, out, "precision: 2")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faraid", "config.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "currency: IDR")

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", path, "--force")
	assert.NoError(t, err)

	// the written file is a valid config
	out, err = run(t, "--config", path, "calc", "--estate", "100", "--heir", "1:1", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"currency": "IDR"`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "faraid dev\n", out)
}
