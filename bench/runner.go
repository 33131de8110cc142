package bench

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Hakuto4838/nasp-skiplist/datastream"
	"github.com/Hakuto4838/nasp-skiplist/skiplist"
	"github.com/Hakuto4838/nasp-skiplist/skiplist/analyTool"
	"github.com/Hakuto4838/nasp-skiplist/skiplist/basic"
)

// StructureName 是結果表中 Structure 欄位的值
const StructureName = "SkipList"

// Result 是單一 (dataset, policy) 的測試結果
type Result struct {
	Structure    string
	Policy       Policy
	Distribution string
	File         string
	N            int
	Runs         int
	AvgMs        float64
	MinMs        float64
	MaxMs        float64
	// AvgSteps 未啟用 Steps 時為 NaN
	AvgSteps float64
}

// RowWriter 接收每一筆完成的結果
type RowWriter interface {
	WriteResult(res Result) error
}

type Runner struct {
	cfg      Config
	policies []Policy
	logger   *zap.Logger
}

func NewRunner(cfg Config, logger *zap.Logger) (*Runner, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %v", errs)
	}
	policies, err := cfg.Policies()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, policies: policies, logger: logger}, nil
}

func (r *Runner) newList(run int) *basic.BasicSkipList {
	return basic.NewBasicSkipList(r.cfg.Seed+int64(run),
		basic.WithMaxLevel(r.cfg.MaxLevel),
		basic.WithProbability(r.cfg.Probability))
}

// Run 依序測試 paths 中的每個資料檔。
// 無法讀取或沒有資料的檔案會記錄後略過；sink 不為 nil 時每完成一筆就寫出。
func (r *Runner) Run(ctx context.Context, paths []string, sink RowWriter) ([]Result, error) {
	results := make([]Result, 0, len(paths)*len(r.policies))

	for idx, path := range paths {
		ds, err := datastream.Load(path)
		if err != nil {
			r.logger.Warn("Skipping unreadable dataset", zap.String("path", path), zap.Error(err))
			continue
		}
		if ds.Len() == 0 {
			r.logger.Warn("Skipping empty dataset", zap.String("path", path))
			continue
		}

		r.logger.Info("Testing dataset",
			zap.Int("index", idx+1),
			zap.Int("total", len(paths)),
			zap.String("file", ds.Name),
			zap.String("distribution", ds.Distribution),
			zap.Int("n", ds.Len()),
			zap.String("fingerprint", fmt.Sprintf("%016x", ds.Fingerprint)))

		for _, policy := range r.policies {
			res, err := r.benchmark(ctx, ds, policy)
			if err != nil {
				return results, err
			}
			results = append(results, res)
			r.logger.Debug("Benchmark done",
				zap.String("file", ds.Name),
				zap.Stringer("policy", policy),
				zap.Float64("avg_ms", res.AvgMs))
			if sink != nil {
				if err := sink.WriteResult(res); err != nil {
					return results, fmt.Errorf("write result for %s: %w", ds.Name, err)
				}
			}
		}
	}
	return results, nil
}

func (r *Runner) benchmark(ctx context.Context, ds *datastream.Dataset, policy Policy) (Result, error) {
	durations := make([]float64, 0, r.cfg.Runs)
	for i := 0; i < r.cfg.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		sl := r.newList(i)
		elapsed := runOpsAndTime(sl, ds.Values, policy.Randomize())
		// NaN 無法被比較，刪除後會殘留
		if left := sl.Len(); left != 0 && i == 0 {
			r.logger.Warn("Keys left after removing all",
				zap.String("file", ds.Name),
				zap.Stringer("policy", policy),
				zap.Int("left", left))
		}
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
	}

	sort.Float64s(durations)
	sum := 0.0
	for _, v := range durations {
		sum += v
	}

	steps := math.NaN()
	if r.cfg.Steps {
		sl := r.newList(r.cfg.Runs)
		for _, x := range ds.Values {
			sl.Insert(x, policy.Randomize())
		}
		steps = analyTool.AverageSteps(sl, ds.Values)
	}

	return Result{
		Structure:    StructureName,
		Policy:       policy,
		Distribution: ds.Distribution,
		File:         ds.Name,
		N:            ds.Len(),
		Runs:         r.cfg.Runs,
		AvgMs:        sum / float64(len(durations)),
		MinMs:        durations[0],
		MaxMs:        durations[len(durations)-1],
		AvgSteps:     steps,
	}, nil
}

// runOpsAndTime 依序插入、搜尋、刪除全部資料並計時
func runOpsAndTime(sl skiplist.Set, data []float64, randomize bool) time.Duration {
	start := time.Now()
	for _, x := range data {
		sl.Insert(x, randomize)
	}
	for _, x := range data {
		sl.Search(x)
	}
	for _, x := range data {
		sl.Remove(x)
	}
	return time.Since(start)
}
