package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Hakuto4838/nasp-skiplist/bench"
	"github.com/Hakuto4838/nasp-skiplist/datastream"
)

var progressMessage = color.GreenString("==>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v %v\n", color.RedString("Error:"), err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	v := viper.New()
	defaults := bench.DefaultConfig()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "benchrun [data-dir]",
		Short:         "Benchmark the skip list over every dataset under a directory",
		Long:          "For each dataset file and each height policy, insert, search and remove every value several times and record the average time.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read configuration file(%s): %w", cfgFile, err)
				}
			}
			cfg := defaults
			if err := v.Unmarshal(&cfg); err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.DataDir = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&cfgFile, "config", "C", "", "Read configuration from specified `FILE`, support JSON, TOML, YAML, HCL, or Java properties formats.")
	addConfigFlags(fs, defaults)

	_ = v.BindPFlags(fs)
	v.SetEnvPrefix("BENCHRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// addConfigFlags 註冊與 bench.Config 欄位同名的旗標，供 viper 綁定
func addConfigFlags(fs *pflag.FlagSet, defaults bench.Config) {
	fs.String("data-dir", defaults.DataDir, "root directory of datasets, each file's parent directory is its distribution")
	fs.String("out", defaults.Output, "CSV file to write results to")
	fs.String("summary", defaults.Summary, "optional YAML file for per-policy aggregate statistics")
	fs.Int("runs", defaults.Runs, "how many times to repeat each benchmark")
	fs.String("policy", defaults.Policy, "policies to run: all or comma list (random,deterministic)")
	fs.Int("max-level", defaults.MaxLevel, "highest level index of the skip list")
	fs.Float64("p", defaults.Probability, "promotion probability for random heights")
	fs.Int64("seed", defaults.Seed, "seed for height selection, run i uses seed+i")
	fs.Bool("steps", defaults.Steps, "also measure the average search steps per dataset")
	fs.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	fs.String("log-file", defaults.LogFile, "also write JSON logs to this file")
}

func printConfig(cfg bench.Config) {
	fmt.Printf("%v Configuration items:\n", progressMessage)
	table := uitable.New()
	table.Separator = " "
	table.MaxColWidth = 80
	table.RightAlign(0)
	table.AddRow("data-dir:", cfg.DataDir)
	table.AddRow("out:", cfg.Output)
	table.AddRow("summary:", cfg.Summary)
	table.AddRow("runs:", cfg.Runs)
	table.AddRow("policy:", cfg.Policy)
	table.AddRow("max-level:", cfg.MaxLevel)
	table.AddRow("p:", cfg.Probability)
	table.AddRow("seed:", cfg.Seed)
	table.AddRow("steps:", cfg.Steps)
	fmt.Println(table)
}

func run(ctx context.Context, cfg bench.Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "%v %v\n", color.RedString("Error:"), err)
		}
		return fmt.Errorf("invalid configuration")
	}

	logger, err := bench.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	printConfig(cfg)

	paths, err := datastream.Collect(cfg.DataDir)
	if err != nil {
		return err
	}
	fmt.Printf("%v Found %d dataset files in %s\n", progressMessage, len(paths), cfg.DataDir)

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}
	defer out.Close()

	sink, err := bench.NewCSVWriter(out)
	if err != nil {
		return err
	}

	runner, err := bench.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	results, err := runner.Run(ctx, paths, sink)
	if err != nil {
		logger.Error("Benchmark stopped", zap.Error(err), zap.Int("completed", len(results)))
		return err
	}

	fmt.Println(strings.Repeat("=", 80))
	bench.RenderTable(os.Stdout, results)

	if cfg.Summary != "" {
		summaries := bench.Summarize(results)
		if err := bench.WriteSummaryYAML(cfg.Summary, summaries); err != nil {
			return fmt.Errorf("write summary %s: %w", cfg.Summary, err)
		}
		fmt.Printf("%v Summary written to %s\n", progressMessage, cfg.Summary)
	}

	fmt.Printf("%v Done! Results are in %s\n", progressMessage, cfg.Output)
	return nil
}
