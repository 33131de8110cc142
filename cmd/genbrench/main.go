package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hakuto4838/nasp-skiplist/datastream"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative count: %s", s)
	}
	return int(f), nil
}

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}

	// 找出最大的 10 的冪次
	exp := 0
	divisor := 1
	for temp := n; temp >= 10; temp /= 10 {
		exp++
		divisor *= 10
	}

	coefficient := float64(n) / float64(divisor)
	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

type genOptions struct {
	n       int
	dists   []string
	nums    int
	seed    int64
	path    string
	binary  bool
	perLine int
}

// generate 依分布產生資料檔，回傳寫出的檔案路徑
func generate(opts genOptions) ([]string, error) {
	var written []string
	for _, dist := range opts.dists {
		dir := filepath.Join(opts.path, dist)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, fmt.Errorf("create output dir: %w", err)
		}
		for i := 0; i < opts.nums; i++ {
			gen, err := datastream.NewGenerator(dist, uint64(opts.seed+int64(i)))
			if err != nil {
				return written, err
			}
			values := gen.Generate(opts.n)

			base := fmt.Sprintf("%s_n%s_%d", gen.Name(), formatScientific(opts.n), i)
			var file string
			if opts.binary {
				file = filepath.Join(dir, base+".bin")
				err = datastream.WriteBinary(file, values)
			} else {
				file = filepath.Join(dir, base+".txt")
				err = datastream.WriteText(file, values, opts.perLine)
			}
			if err != nil {
				return written, fmt.Errorf("write %s: %w", file, err)
			}
			written = append(written, file)
		}
	}
	return written, nil
}

func splitDists(s string) []string {
	if s == "" || s == "all" {
		return datastream.GeneratorNames
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	var nStr, dists string
	opts := genOptions{}

	cmd := &cobra.Command{
		Use:           "genbrench",
		Short:         "Generate numeric datasets grouped by distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseScientificNotation(nStr)
			if err != nil {
				return fmt.Errorf("parse -n: %w", err)
			}
			opts.n = n
			opts.dists = splitDists(dists)

			fmt.Printf("%v n: %d, distributions: %s, files each: %d, seed: %d, path: %s\n",
				color.GreenString("==>"), opts.n, strings.Join(opts.dists, ","), opts.nums, opts.seed, opts.path)
			files, err := generate(opts)
			for _, f := range files {
				fmt.Printf("  wrote %s\n", f)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%v Done!\n", color.GreenString("==>"))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&nStr, "n", "n", "1e4", "number of values per file (supports scientific notation, e.g. 1e5)")
	fs.StringVar(&dists, "dist", "all", "distributions: all or comma list ("+strings.Join(datastream.GeneratorNames, ",")+")")
	fs.IntVar(&opts.nums, "nums", 1, "number of files per distribution")
	fs.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "seed for generators, file i uses seed+i")
	fs.StringVar(&opts.path, "path", "datasets", "output root directory")
	fs.BoolVar(&opts.binary, "binary", false, "write SLDATA01 binary files instead of text")
	fs.IntVar(&opts.perLine, "per-line", 16, "values per line in text files")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
