package datastream

import (
	"fmt"
	"math"
	randv2 "math/rand/v2"
)

// ZipfDataGenerator 產生符合 Zipf 分布的數值。
// rank 由 Zipf 分布抽出，再映射到打亂過的 key 空間，因此會出現重複值。
type ZipfDataGenerator struct {
	domain    int
	s, v      float64
	rankToKey []float64
	zipf      *randv2.Zipf
}

// NewZipfDataGenerator 需滿足 domain > 0、s > 1、v >= 1
func NewZipfDataGenerator(domain int, s, v float64, seed uint64) (*ZipfDataGenerator, error) {
	if domain <= 0 {
		return nil, fmt.Errorf("invalid zipf domain: %d", domain)
	}
	if s <= 1.0 || v < 1.0 {
		return nil, fmt.Errorf("invalid zipf params: s=%v must >1, v=%v must >=1", s, v)
	}
	r := randv2.New(randv2.NewPCG(seed, 0))

	// 建立 rank -> key 的隨機對應（不重複）
	rankToKey := make([]float64, domain)
	for i := range rankToKey {
		rankToKey[i] = float64(i)
	}
	r.Shuffle(len(rankToKey), func(i, j int) { rankToKey[i], rankToKey[j] = rankToKey[j], rankToKey[i] })

	return &ZipfDataGenerator{
		domain:    domain,
		s:         s,
		v:         v,
		rankToKey: rankToKey,
		zipf:      randv2.NewZipf(r, s, v, uint64(domain-1)),
	}, nil
}

func (z *ZipfDataGenerator) Name() string { return "zipf" }

// Next 產生一筆數值
func (z *ZipfDataGenerator) Next() float64 {
	return z.rankToKey[z.zipf.Uint64()]
}

// Generate 產生指定長度的序列
func (z *ZipfDataGenerator) Generate(n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = z.Next()
	}
	return seq
}

// Entropy 計算理論分布的熵（單位：bit）
func (z *ZipfDataGenerator) Entropy() float64 {
	weights := make([]float64, z.domain)
	var sum float64
	for i := range weights {
		weights[i] = 1.0 / math.Pow(z.v+float64(i), z.s)
		sum += weights[i]
	}
	h := 0.0
	for _, w := range weights {
		p := w / sum
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
