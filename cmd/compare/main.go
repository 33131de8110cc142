package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hakuto4838/nasp-skiplist/bench"
	"github.com/Hakuto4838/nasp-skiplist/datastream"
	"github.com/Hakuto4838/nasp-skiplist/skiplist/analyTool"
	"github.com/Hakuto4838/nasp-skiplist/skiplist/basic"
)

type compareOptions struct {
	file     string
	dist     string
	n        int
	seed     int64
	maxLevel int
	p        float64
	rows     int
	cols     int
}

func loadValues(opts compareOptions) ([]float64, string, error) {
	if opts.file != "" {
		ds, err := datastream.Load(opts.file)
		if err != nil {
			return nil, "", err
		}
		return ds.Values, ds.Name, nil
	}
	gen, err := datastream.NewGenerator(opts.dist, uint64(opts.seed))
	if err != nil {
		return nil, "", err
	}
	return gen.Generate(opts.n), gen.Name(), nil
}

// testOne 建立一個 skip list 並輸出其層級統計與結構
func testOne(w io.Writer, policy bench.Policy, values []float64, opts compareOptions) error {
	sl := basic.NewBasicSkipList(opts.seed, basic.WithMaxLevel(opts.maxLevel), basic.WithProbability(opts.p))
	for _, v := range values {
		sl.Insert(v, policy.Randomize())
	}

	fmt.Fprintf(w, "=== %s ===\n", policy)
	if err := analyTool.CheckStruct(sl); err != nil {
		return fmt.Errorf("%s: broken structure: %w", policy, err)
	}
	size, level := sl.GetMaxStats()
	fmt.Fprintf(w, "size: %d, level: %d\n", size, level)
	counts := analyTool.CountLevel(sl)
	for i := len(counts) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "Level %2d: %d\n", i, counts[i])
	}
	fmt.Fprintf(w, "avg steps: %.6f\n\n", analyTool.AverageSteps(sl, sl.Keys()))
	analyTool.PrintSkipList(w, sl, opts.rows, opts.cols)
	fmt.Fprintln(w)
	return nil
}

func main() {
	opts := compareOptions{}

	cmd := &cobra.Command{
		Use:           "compare",
		Short:         "Compare the tower layout of random and deterministic heights",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, name, err := loadValues(opts)
			if err != nil {
				return err
			}
			fmt.Printf("%v %s (%d values)\n", color.GreenString("==>"), name, len(values))
			fmt.Println(strings.Repeat("=", 80))
			for _, policy := range []bench.Policy{bench.PolicyRandom, bench.PolicyDeterministic} {
				if err := testOne(os.Stdout, policy, values, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVar(&opts.file, "file", "", "dataset file to load (otherwise values are generated)")
	fs.StringVar(&opts.dist, "dist", "uniform", "distribution to generate when no file is given")
	fs.IntVarP(&opts.n, "n", "n", 900, "number of values to generate")
	fs.Int64Var(&opts.seed, "seed", 42, "seed for generator and heights")
	fs.IntVar(&opts.maxLevel, "max-level", basic.DefaultMaxLevel, "highest level index of the skip list")
	fs.Float64Var(&opts.p, "p", basic.DefaultProbability, "promotion probability")
	fs.IntVar(&opts.rows, "rows", 8, "levels to print")
	fs.IntVar(&opts.cols, "cols", 35, "nodes to print")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
