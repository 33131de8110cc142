package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"Structure", "Policy", "Distribution", "File", "N", "Time_ms"}

// CSVWriter 將結果逐筆寫成 CSV，每筆寫完立即 flush
type CSVWriter struct {
	w *csv.Writer
}

func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.write(csvHeader); err != nil {
		return nil, err
	}
	return cw, nil
}

func (cw *CSVWriter) write(row []string) error {
	if err := cw.w.Write(row); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}

func (cw *CSVWriter) WriteResult(res Result) error {
	return cw.write([]string{
		res.Structure,
		res.Policy.String(),
		res.Distribution,
		res.File,
		strconv.Itoa(res.N),
		fmt.Sprintf("%.3f", res.AvgMs),
	})
}

// RenderTable 以表格輸出所有結果
func RenderTable(w io.Writer, results []Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		steps := "N/A"
		if !math.IsNaN(res.AvgSteps) {
			steps = fmt.Sprintf("%.3f", res.AvgSteps)
		}
		rows = append(rows, []string{
			res.Policy.String(),
			res.Distribution,
			res.File,
			strconv.Itoa(res.N),
			strconv.Itoa(res.Runs),
			fmt.Sprintf("%.3f", res.AvgMs),
			fmt.Sprintf("%.3f", res.MinMs),
			fmt.Sprintf("%.3f", res.MaxMs),
			steps,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Distribution", "File", "N", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "AvgSteps"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// PolicySummary 是單一 policy 在所有資料檔上的匯總
type PolicySummary struct {
	Policy   string  `yaml:"policy"`
	Datasets int     `yaml:"datasets"`
	TotalN   int     `yaml:"total_n"`
	AvgMs    float64 `yaml:"avg_ms"`
	MinMs    float64 `yaml:"min_ms"`
	MaxMs    float64 `yaml:"max_ms"`
}

// Summarize 依 policy 匯總結果，順序與結果中首次出現的順序相同
func Summarize(results []Result) []PolicySummary {
	var out []PolicySummary
	index := map[Policy]int{}
	for _, res := range results {
		i, ok := index[res.Policy]
		if !ok {
			i = len(out)
			index[res.Policy] = i
			out = append(out, PolicySummary{
				Policy: res.Policy.String(),
				MinMs:  res.MinMs,
				MaxMs:  res.MaxMs,
			})
		}
		s := &out[i]
		s.Datasets++
		s.TotalN += res.N
		s.AvgMs += res.AvgMs
		s.MinMs = math.Min(s.MinMs, res.MinMs)
		s.MaxMs = math.Max(s.MaxMs, res.MaxMs)
	}
	for i := range out {
		out[i].AvgMs /= float64(out[i].Datasets)
	}
	return out
}

type summaryFile struct {
	Structure string          `yaml:"structure"`
	Policies  []PolicySummary `yaml:"policies"`
}

// WriteSummaryYAML 將匯總結果寫成 YAML 檔
func WriteSummaryYAML(filename string, summaries []PolicySummary) error {
	out, err := yaml.Marshal(summaryFile{Structure: StructureName, Policies: summaries})
	if err != nil {
		return err
	}
	return os.WriteFile(filename, out, 0o644)
}
