package basic

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/nasp-skiplist/skiplist"
)

const (
	DefaultMaxLevel    = 16
	DefaultProbability = 0.5

	nilIndex  int32 = -1
	headIndex int32 = 0
)

// basicNode 是 arena 中的一個槽位，next 存放各層後繼節點的索引
type basicNode struct {
	key  skiplist.K
	next []int32
}

// BasicSkipList 是標準的 Pugh skip list。
// 所有節點放在 nodes 中以索引互相連結，nodes[0] 為 header；
// 被刪除的槽位放入 free，之後的插入會優先重用。
// 非併發安全。
type BasicSkipList struct {
	nodes    []basicNode
	free     []int32
	update   []int32
	level    int32
	maxLevel int32
	p        float64
	rand     skiplist.RandSource
	size     int32
}

// Option 調整 BasicSkipList 的建構參數，不合法的值會被忽略
type Option func(*BasicSkipList)

// WithMaxLevel 設定最高層級索引（header 高度）
func WithMaxLevel(level int) Option {
	return func(sl *BasicSkipList) {
		if level >= 0 && level < math.MaxInt16 {
			sl.maxLevel = int32(level)
		}
	}
}

// WithProbability 設定升層機率 p，僅接受 0 < p < 1
func WithProbability(p float64) Option {
	return func(sl *BasicSkipList) {
		if p > 0 && p < 1 {
			sl.p = p
		}
	}
}

// WithRand 注入高度選擇所用的亂數來源
func WithRand(src skiplist.RandSource) Option {
	return func(sl *BasicSkipList) {
		if src != nil {
			sl.rand = src
		}
	}
}

func NewBasicSkipList(seed int64, opts ...Option) *BasicSkipList {
	sl := &BasicSkipList{
		maxLevel: DefaultMaxLevel,
		p:        DefaultProbability,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sl)
		}
	}
	if sl.rand == nil {
		sl.rand = rand.New(rand.NewSource(seed))
	}
	sl.nodes = []basicNode{newNode(-math.MaxFloat64, sl.maxLevel)}
	sl.update = make([]int32, sl.maxLevel+1)
	return sl
}

func newNode(key skiplist.K, level int32) basicNode {
	next := make([]int32, level+1)
	for i := range next {
		next[i] = nilIndex
	}
	return basicNode{key: key, next: next}
}

func (sl *BasicSkipList) randomLevel() int32 {
	lvl := int32(0)
	for sl.rand.Float64() < sl.p && lvl < sl.maxLevel {
		lvl++
	}
	return lvl
}

// travel 由最高層往下走，停在每層最後一個 key 小於目標的節點。
// update 不為 nil 時記錄每層停留的節點；回傳第 0 層的候選節點。
func (sl *BasicSkipList) travel(key skiplist.K, update []int32) int32 {
	cur := headIndex
	for h := sl.level; h >= 0; h-- {
		for nx := sl.nodes[cur].next[h]; nx != nilIndex && sl.nodes[nx].key < key; nx = sl.nodes[cur].next[h] {
			cur = nx
		}
		if update != nil {
			update[h] = cur
		}
	}
	return sl.nodes[cur].next[0]
}

func (sl *BasicSkipList) alloc(key skiplist.K, level int32) int32 {
	if n := len(sl.free); n > 0 {
		idx := sl.free[n-1]
		sl.free = sl.free[:n-1]
		nd := &sl.nodes[idx]
		nd.key = key
		if cap(nd.next) > int(level) {
			nd.next = nd.next[:level+1]
			for i := range nd.next {
				nd.next[i] = nilIndex
			}
		} else {
			nd.next = newNode(key, level).next
		}
		return idx
	}
	sl.nodes = append(sl.nodes, newNode(key, level))
	return int32(len(sl.nodes) - 1)
}

// release 清空槽位的連結並放回 free list
func (sl *BasicSkipList) release(idx int32) {
	nd := &sl.nodes[idx]
	for i := range nd.next {
		nd.next[i] = nilIndex
	}
	nd.key = 0
	sl.free = append(sl.free, idx)
}

func (sl *BasicSkipList) Insert(key skiplist.K, randomize bool) {
	cand := sl.travel(key, sl.update)
	if cand != nilIndex && sl.nodes[cand].key == key {
		return
	}

	lvl := int32(0)
	if randomize {
		lvl = sl.randomLevel()
	}
	if lvl > sl.level {
		for h := sl.level + 1; h <= lvl; h++ {
			sl.update[h] = headIndex
		}
		sl.level = lvl
	}

	idx := sl.alloc(key, lvl)
	for h := int32(0); h <= lvl; h++ {
		prev := sl.update[h]
		sl.nodes[idx].next[h] = sl.nodes[prev].next[h]
		sl.nodes[prev].next[h] = idx
	}
	sl.size++
}

func (sl *BasicSkipList) Search(key skiplist.K) bool {
	cand := sl.travel(key, nil)
	return cand != nilIndex && sl.nodes[cand].key == key
}

func (sl *BasicSkipList) Remove(key skiplist.K) {
	cand := sl.travel(key, sl.update)
	if cand == nilIndex || sl.nodes[cand].key != key {
		return
	}

	for h := int32(0); h <= sl.level; h++ {
		prev := sl.update[h]
		if sl.nodes[prev].next[h] != cand {
			break
		}
		sl.nodes[prev].next[h] = sl.nodes[cand].next[h]
	}
	sl.release(cand)

	head := &sl.nodes[headIndex]
	for sl.level > 0 && head.next[sl.level] == nilIndex {
		sl.level--
	}
	sl.size--
}

// Clear 釋放所有節點，只保留 header
func (sl *BasicSkipList) Clear() {
	sl.nodes = sl.nodes[:1]
	head := &sl.nodes[headIndex]
	for i := range head.next {
		head.next[i] = nilIndex
	}
	sl.free = sl.free[:0]
	sl.level = 0
	sl.size = 0
}

// Keys 依第 0 層順序回傳所有 key
func (sl *BasicSkipList) Keys() []skiplist.K {
	out := make([]skiplist.K, 0, sl.size)
	for idx := sl.nodes[headIndex].next[0]; idx != nilIndex; idx = sl.nodes[idx].next[0] {
		out = append(out, sl.nodes[idx].key)
	}
	return out
}

func (sl *BasicSkipList) Len() int {
	return int(sl.size)
}

func (sl *BasicSkipList) Level() int {
	return int(sl.level)
}

func (sl *BasicSkipList) MaxLevel() int {
	return int(sl.maxLevel)
}

func (sl *BasicSkipList) GetHead() skiplist.Nodelike {
	return nodeRef{sl: sl, idx: headIndex}
}

func (sl *BasicSkipList) GetMaxStats() (int, int) {
	return int(sl.size), int(sl.level)
}

// nodeRef 是 arena 槽位的唯讀視圖，供 analyTool 走訪
type nodeRef struct {
	sl  *BasicSkipList
	idx int32
}

func (nd nodeRef) GetKey() skiplist.K {
	return nd.sl.nodes[nd.idx].key
}

func (nd nodeRef) GetLevel() int32 {
	return int32(len(nd.sl.nodes[nd.idx].next) - 1)
}

func (nd nodeRef) GetNextAt(level int32) skiplist.Nodelike {
	next := nd.sl.nodes[nd.idx].next
	if level < 0 || level >= int32(len(next)) || next[level] == nilIndex {
		return nil
	}
	return nodeRef{sl: nd.sl, idx: next[level]}
}
