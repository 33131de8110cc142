package datastream

import (
	"fmt"
	randv2 "math/rand/v2"
)

// UniformDataGenerator 產生 [lo, hi) 之間均勻分布的數值
type UniformDataGenerator struct {
	lo, hi float64
	rng    *randv2.Rand
}

func NewUniformDataGenerator(lo, hi float64, seed uint64) (*UniformDataGenerator, error) {
	if !(lo < hi) {
		return nil, fmt.Errorf("invalid uniform range: [%v, %v)", lo, hi)
	}
	return &UniformDataGenerator{
		lo:  lo,
		hi:  hi,
		rng: randv2.New(randv2.NewPCG(seed, 0)),
	}, nil
}

func (u *UniformDataGenerator) Name() string { return "uniform" }

// Next 產生一筆數值
func (u *UniformDataGenerator) Next() float64 {
	return u.lo + u.rng.Float64()*(u.hi-u.lo)
}

// Generate 產生指定長度的序列
func (u *UniformDataGenerator) Generate(n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = u.Next()
	}
	return seq
}
