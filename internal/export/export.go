package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/DriesVerstraete/openconcept/internal/sweep"
)

type ExportData struct {
	Input   string               `json:"input"`
	Points  []float64            `json:"points"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

func ExportJSON(path string, result *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{
		Input:   result.Input,
		Points:  result.Points,
		Series:  result.Series,
		Metrics: result.Metrics,
	})
}

func ExportCSV(path string, result *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{result.Input}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range result.Points {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(p, 'g', -1, 64))
		for _, name := range names {
			row = append(row, strconv.FormatFloat(result.Series[name][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
