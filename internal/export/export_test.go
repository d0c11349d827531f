package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/DriesVerstraete/openconcept/internal/sweep"
)

func sampleResult() *sweep.Result {
	return &sweep.Result{
		Input:  "power_in",
		Points: []float64{0, 50, 100},
		Series: map[string][]float64{
			"power_out_A": {0, 22.5, 45},
			"heat_out":    {0, 5, 10},
		},
		Metrics: map[string]float64{"power_balance": 0},
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := ExportCSV(path, sampleResult()); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "power_in" || rows[0][1] != "heat_out" || rows[0][2] != "power_out_A" {
		t.Errorf("header = %v, want swept input then sorted outputs", rows[0])
	}
	if rows[2][0] != "50" || rows[2][2] != "22.5" {
		t.Errorf("middle row = %v", rows[2])
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.json")
	if err := ExportJSON(path, sampleResult()); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded ExportData
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Input != "power_in" || len(decoded.Points) != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Series["power_out_A"][2] != 45 {
		t.Errorf("power_out_A = %v", decoded.Series["power_out_A"])
	}
}
