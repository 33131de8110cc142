package basic

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hakuto4838/nasp-skiplist/skiplist"
	"github.com/Hakuto4838/nasp-skiplist/skiplist/analyTool"
)

// seqRand 依序回傳固定的亂數，用來控制節點高度
type seqRand struct {
	vals []float64
	pos  int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.pos%len(r.vals)]
	r.pos++
	return v
}

func TestBasicSkipListInterface(t *testing.T) {
	var _ skiplist.Set = (*BasicSkipList)(nil)
	var _ skiplist.Analyable = (*BasicSkipList)(nil)
	var _ skiplist.Nodelike = nodeRef{}
	var _ skiplist.RandSource = (*rand.Rand)(nil)
}

func TestNewBasicSkipListDefaults(t *testing.T) {
	sl := NewBasicSkipList(42)
	assert.Equal(t, DefaultMaxLevel, sl.MaxLevel())
	assert.Equal(t, 0, sl.Level())
	assert.Equal(t, 0, sl.Len())
	assert.Equal(t, int32(DefaultMaxLevel), sl.GetHead().GetLevel())
	assert.Nil(t, sl.GetHead().GetNextAt(0))
	assert.False(t, sl.Search(0))
}

func TestInvalidOptionsKeepDefaults(t *testing.T) {
	sl := NewBasicSkipList(1, WithMaxLevel(-1), WithProbability(0), WithProbability(1.5), WithRand(nil))
	assert.Equal(t, DefaultMaxLevel, sl.MaxLevel())
	assert.Equal(t, DefaultProbability, sl.p)
	assert.NotNil(t, sl.rand)
}

func TestDeterministicScenario(t *testing.T) {
	sl := NewBasicSkipList(42)
	for _, k := range []float64{5, 2, 8, 1} {
		sl.Insert(k, false)
	}
	assert.True(t, sl.Search(2))
	assert.False(t, sl.Search(3))

	sl.Remove(2)
	assert.False(t, sl.Search(2))
	assert.Equal(t, []skiplist.K{1, 5, 8}, sl.Keys())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestDuplicateInsert(t *testing.T) {
	for _, randomize := range []bool{true, false} {
		sl := NewBasicSkipList(7)
		sl.Insert(10, randomize)
		sl.Insert(10, randomize)
		sl.Insert(10, randomize)

		assert.Equal(t, 1, sl.Len())
		assert.Equal(t, []skiplist.K{10}, sl.Keys())

		sl.Remove(10)
		assert.Equal(t, 0, sl.Len())
		assert.Empty(t, sl.Keys())
		assert.Equal(t, 0, sl.Level())
		assert.False(t, sl.Search(10))
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	sl := NewBasicSkipList(3)
	sl.Remove(1)
	for _, k := range []float64{3, 1, 2} {
		sl.Insert(k, true)
	}
	level := sl.Level()
	sl.Remove(2.5)
	sl.Remove(-1)
	sl.Remove(100)
	assert.Equal(t, []skiplist.K{1, 2, 3}, sl.Keys())
	assert.Equal(t, level, sl.Level())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestDeterministicModeIsSortedList(t *testing.T) {
	sl := NewBasicSkipList(42)
	r := rand.New(rand.NewSource(1))
	model := map[float64]bool{}
	for i := 0; i < 500; i++ {
		k := float64(r.Intn(200))
		if r.Intn(3) == 0 {
			sl.Remove(k)
			delete(model, k)
		} else {
			sl.Insert(k, false)
			model[k] = true
		}
		require.Equal(t, 0, sl.Level())
	}

	for node := sl.GetHead().GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		assert.Equal(t, int32(0), node.GetLevel())
	}
	assert.Nil(t, sl.GetHead().GetNextAt(1))

	want := make([]float64, 0, len(model))
	for k := range model {
		want = append(want, k)
	}
	sort.Float64s(want)
	assert.Equal(t, want, sl.Keys())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestRandomAgainstModel(t *testing.T) {
	sl := NewBasicSkipList(99)
	r := rand.New(rand.NewSource(2))
	model := map[float64]bool{}
	for i := 0; i < 5000; i++ {
		k := float64(r.Intn(1000)) / 4
		switch r.Intn(3) {
		case 0:
			sl.Remove(k)
			delete(model, k)
		case 1:
			sl.Insert(k, true)
			model[k] = true
		default:
			require.Equal(t, model[k], sl.Search(k), "search(%v)", k)
		}
		if i%500 == 0 {
			require.NoError(t, analyTool.CheckStruct(sl))
		}
	}
	require.NoError(t, analyTool.CheckStruct(sl))
	assert.Equal(t, len(model), sl.Len())
	for k := range model {
		assert.True(t, sl.Search(k))
	}
}

func TestRoundTripEmptiesList(t *testing.T) {
	sl := NewBasicSkipList(5)
	r := rand.New(rand.NewSource(5))
	keys := r.Perm(2000)
	for _, k := range keys {
		sl.Insert(float64(k), true)
	}
	assert.Greater(t, sl.Level(), 0)

	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		sl.Remove(float64(k))
	}
	assert.Equal(t, 0, sl.Len())
	assert.Equal(t, 0, sl.Level())
	for _, k := range keys {
		assert.False(t, sl.Search(float64(k)))
	}
	head := sl.GetHead()
	for i := int32(0); i <= head.GetLevel(); i++ {
		assert.Nil(t, head.GetNextAt(i))
	}
	// 釋放的槽位不再保留任何連結
	for _, idx := range sl.free {
		for _, nx := range sl.nodes[idx].next {
			assert.Equal(t, nilIndex, nx)
		}
	}
}

func TestInjectedRandControlsHeight(t *testing.T) {
	src := &seqRand{vals: []float64{0.1, 0.2, 0.9}}
	sl := NewBasicSkipList(0, WithRand(src))
	sl.Insert(1, true)

	assert.Equal(t, 2, sl.Level())
	node := sl.GetHead().GetNextAt(2)
	require.NotNil(t, node)
	assert.Equal(t, skiplist.K(1), node.GetKey())
	assert.Equal(t, int32(2), node.GetLevel())

	// 決定模式不消耗亂數
	sl.Insert(2, false)
	assert.Equal(t, 3, src.pos)
}

func TestHeightBoundedByMaxLevel(t *testing.T) {
	sl := NewBasicSkipList(0, WithMaxLevel(3), WithRand(&seqRand{vals: []float64{0}}))
	for i := 0; i < 10; i++ {
		sl.Insert(float64(i), true)
	}
	assert.Equal(t, 3, sl.Level())
	for node := sl.GetHead().GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		assert.Equal(t, int32(3), node.GetLevel())
	}
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestProbabilityOption(t *testing.T) {
	// 0.3 < 0.4 升一層，0.6 停止
	sl := NewBasicSkipList(0, WithProbability(0.4), WithRand(&seqRand{vals: []float64{0.3, 0.6}}))
	sl.Insert(1, true)
	assert.Equal(t, 1, sl.Level())
}

func TestLevelShrinksOnRemove(t *testing.T) {
	src := &seqRand{vals: []float64{0.1, 0.1, 0.1, 0.9, 0.9}}
	sl := NewBasicSkipList(0, WithRand(src))
	sl.Insert(5, true) // 高度 3
	sl.Insert(6, true) // 高度 0
	assert.Equal(t, 3, sl.Level())

	sl.Remove(5)
	assert.Equal(t, 0, sl.Level())
	assert.Equal(t, []skiplist.K{6}, sl.Keys())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestFreeListReusesSlots(t *testing.T) {
	sl := NewBasicSkipList(1)
	sl.Insert(1, true)
	sl.Insert(2, true)
	sl.Insert(3, true)
	require.Len(t, sl.nodes, 4)

	sl.Remove(2)
	assert.Len(t, sl.free, 1)
	sl.Insert(4, true)
	assert.Len(t, sl.nodes, 4)
	assert.Empty(t, sl.free)
	assert.Equal(t, []skiplist.K{1, 3, 4}, sl.Keys())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestClear(t *testing.T) {
	sl := NewBasicSkipList(8)
	for i := 0; i < 100; i++ {
		sl.Insert(float64(i), true)
	}
	sl.Clear()
	assert.Equal(t, 0, sl.Len())
	assert.Equal(t, 0, sl.Level())
	assert.Empty(t, sl.Keys())
	assert.False(t, sl.Search(50))

	sl.Insert(3, true)
	assert.Equal(t, []skiplist.K{3}, sl.Keys())
	require.NoError(t, analyTool.CheckStruct(sl))
}

func TestNegativeAndFractionalKeys(t *testing.T) {
	sl := NewBasicSkipList(11)
	keys := []float64{-1.5, 0, 2.25, -math.MaxFloat64 / 2, math.Inf(1), 1e-9}
	for _, k := range keys {
		sl.Insert(k, true)
	}
	sorted := append([]float64(nil), keys...)
	sort.Float64s(sorted)
	assert.Equal(t, sorted, sl.Keys())
	for _, k := range keys {
		assert.True(t, sl.Search(k))
	}
}

func TestNaNKeys(t *testing.T) {
	sl := NewBasicSkipList(4)
	sl.Insert(1, false)
	sl.Insert(math.NaN(), false)
	sl.Insert(math.NaN(), false)

	assert.Equal(t, 3, sl.Len())
	assert.False(t, sl.Search(math.NaN()))
	sl.Remove(math.NaN())
	assert.Equal(t, 3, sl.Len())

	keys := sl.Keys()
	require.Len(t, keys, 3)
	assert.True(t, math.IsNaN(keys[0]))
	assert.True(t, math.IsNaN(keys[1]))
	assert.Equal(t, skiplist.K(1), keys[2])
}

func BenchmarkInsertSearchRemove(b *testing.B) {
	r := rand.New(rand.NewSource(42))
	data := make([]float64, 10000)
	for i := range data {
		data[i] = r.Float64()
	}
	for _, randomize := range []bool{true, false} {
		name := "Random"
		if !randomize {
			name = "Deterministic"
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sl := NewBasicSkipList(int64(i))
				for _, x := range data {
					sl.Insert(x, randomize)
				}
				for _, x := range data {
					sl.Search(x)
				}
				for _, x := range data {
					sl.Remove(x)
				}
			}
		})
	}
}
