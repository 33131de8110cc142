package datastream

import (
	"fmt"
	randv2 "math/rand/v2"
	"strings"
)

// Generator 產生一組測試資料，Name 作為輸出的分布目錄名稱
type Generator interface {
	Name() string
	Generate(n int) []float64
}

// NormalDataGenerator 產生常態分布的數值
type NormalDataGenerator struct {
	mean, stddev float64
	rng          *randv2.Rand
}

func NewNormalDataGenerator(mean, stddev float64, seed uint64) *NormalDataGenerator {
	return &NormalDataGenerator{
		mean:   mean,
		stddev: stddev,
		rng:    randv2.New(randv2.NewPCG(seed, 0)),
	}
}

func (g *NormalDataGenerator) Name() string { return "normal" }

func (g *NormalDataGenerator) Generate(n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = g.mean + g.rng.NormFloat64()*g.stddev
	}
	return seq
}

// SortedDataGenerator 產生遞增（或 reversed 時遞減）的等差序列
type SortedDataGenerator struct {
	start, step float64
	reversed    bool
}

func NewSortedDataGenerator(start, step float64, reversed bool) *SortedDataGenerator {
	return &SortedDataGenerator{start: start, step: step, reversed: reversed}
}

func (g *SortedDataGenerator) Name() string {
	if g.reversed {
		return "reversed"
	}
	return "sorted"
}

func (g *SortedDataGenerator) Generate(n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		idx := i
		if g.reversed {
			idx = n - 1 - i
		}
		seq[i] = g.start + float64(idx)*g.step
	}
	return seq
}

// GeneratorNames 列出 NewGenerator 支援的分布名稱
var GeneratorNames = []string{"uniform", "zipf", "normal", "sorted", "reversed"}

// NewGenerator 依名稱建立預設參數的 Generator
func NewGenerator(name string, seed uint64) (Generator, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "uniform":
		return NewUniformDataGenerator(0, 1e6, seed)
	case "zipf":
		return NewZipfDataGenerator(1<<20, 1.07, 1.0, seed)
	case "normal":
		return NewNormalDataGenerator(0, 1e4, seed), nil
	case "sorted":
		return NewSortedDataGenerator(0, 1, false), nil
	case "reversed":
		return NewSortedDataGenerator(0, 1, true), nil
	default:
		return nil, fmt.Errorf("unknown distribution: %q", name)
	}
}
