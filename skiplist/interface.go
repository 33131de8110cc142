package skiplist

// K 是儲存的 key 型別（雙精度浮點數）
type K = float64

// Set 是有序且不重複的 key 集合
type Set interface {
	// Insert 插入 key；randomize 為 false 時節點高度固定為 0
	Insert(key K, randomize bool)
	Search(key K) bool
	Remove(key K)
	Len() int
}

// Analyable 提供分析功能的介面
type Analyable interface {
	Set
	GetHead() Nodelike
	// GetMaxStats 獲取節點數和目前最高層級
	GetMaxStats() (size int, level int)
}

type Nodelike interface {
	GetKey() K
	GetLevel() int32
	GetNextAt(level int32) Nodelike
}

// RandSource 產生 [0,1) 的均勻亂數，*rand.Rand 即滿足此介面
type RandSource interface {
	Float64() float64
}
