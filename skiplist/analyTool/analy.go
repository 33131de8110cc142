package analyTool

import (
	"fmt"
	"io"
	"strings"

	"github.com/Hakuto4838/nasp-skiplist/skiplist"
)

// FindStep 計算找到指定 key 的總步數和各層步數
func FindStep(sl skiplist.Analyable, key skiplist.K) (step int, level []int) {
	cur := sl.GetHead()
	if cur == nil {
		return 0, []int{}
	}

	totalSteps := 0

	_, maxLevel := sl.GetMaxStats()
	stepsPerLevel := make([]int, maxLevel+1)

	// 從最高層開始搜尋
	for h := maxLevel; h >= 0; h-- {
		levelSteps := 0

		for {
			nextNode := cur.GetNextAt(int32(h))
			if nextNode == nil || !(nextNode.GetKey() < key) {
				break
			}
			cur = nextNode
			levelSteps++
		}

		nextNode := cur.GetNextAt(int32(h))
		if nextNode != nil && nextNode.GetKey() == key {
			levelSteps++ // 加上最後一步
			stepsPerLevel[h] = levelSteps
			totalSteps += levelSteps
			return totalSteps, stepsPerLevel
		}

		stepsPerLevel[h] = levelSteps
		totalSteps += levelSteps + 1 // 加上向下移動
	}

	return totalSteps, stepsPerLevel
}

// AverageSteps 以均勻權重計算 keys 的平均搜尋步數
func AverageSteps(sl skiplist.Analyable, keys []skiplist.K) float64 {
	if len(keys) == 0 {
		return 0.0
	}
	total := 0
	for _, k := range keys {
		s, _ := FindStep(sl, k)
		total += s
	}
	return float64(total) / float64(len(keys))
}

// PrintSkipList 打印 skip list 的結構
func PrintSkipList(w io.Writer, sl skiplist.Analyable, maxLevel, maxNodes int) {
	node := sl.GetHead()
	if node == nil || node.GetNextAt(0) == nil {
		fmt.Fprintln(w, "skip list is empty")
		return
	}

	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = max(0, min(maxLevel, actualMaxLevel))
	rows := make([]strings.Builder, maxLevel+1)
	for i := range rows {
		fmt.Fprintf(&rows[i], "level %2d : ", i)
	}

	node = node.GetNextAt(0)
	for count := 0; node != nil && count < maxNodes; count++ {
		lv := int(node.GetLevel())
		cell := fmt.Sprintf("%6g ->", node.GetKey())
		for i := range rows {
			if i <= lv {
				rows[i].WriteString(cell)
			} else {
				rows[i].WriteString(strings.Repeat(" ", len(cell)-2) + "->")
			}
		}
		node = node.GetNextAt(0)
	}

	for i := maxLevel; i >= 0; i-- {
		fmt.Fprintln(w, rows[i].String())
	}
}

// CheckStruct 檢查 skip list 的結構是否正確：
// 每層遞增、節點出現在 0..自身高度 的每一層、level 等於 header 最高的非空層
func CheckStruct(sl skiplist.Analyable) error {
	head := sl.GetHead()
	if head == nil {
		return fmt.Errorf("nil head")
	}
	size, level := sl.GetMaxStats()
	headLevel := int(head.GetLevel())
	if level > headLevel {
		return fmt.Errorf("level %d exceeds header height %d", level, headLevel)
	}

	last := make([]skiplist.Nodelike, headLevel+1)
	for i := range last {
		last[i] = head
	}

	count := 0
	var prev skiplist.Nodelike
	for node := head.GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		if prev != nil && !(prev.GetKey() < node.GetKey()) {
			return fmt.Errorf("keys not strictly increasing: %g then %g", prev.GetKey(), node.GetKey())
		}
		nodelv := int(node.GetLevel())
		if nodelv > level {
			return fmt.Errorf("node %g has level %d above list level %d", node.GetKey(), nodelv, level)
		}
		for i := 0; i <= nodelv; i++ {
			if last[i].GetNextAt(int32(i)) != node {
				return fmt.Errorf("node %g missing from level %d", node.GetKey(), i)
			}
			last[i] = node
		}
		prev = node
		count++
	}

	for i := range last {
		if last[i].GetNextAt(int32(i)) != nil {
			return fmt.Errorf("level %d links a node absent from level 0", i)
		}
	}

	top := 0
	for i := headLevel; i > 0; i-- {
		if head.GetNextAt(int32(i)) != nil {
			top = i
			break
		}
	}
	if top != level {
		return fmt.Errorf("level is %d but highest occupied level is %d", level, top)
	}
	if count != size {
		return fmt.Errorf("size is %d but level 0 holds %d nodes", size, count)
	}
	return nil
}

// CountLevel 回傳每層的節點數量
func CountLevel(sl skiplist.Analyable) []int {
	_, maxLevel := sl.GetMaxStats()
	levelCounts := make([]int, maxLevel+1)

	// 從第一個實際節點開始（跳過head）
	for current := sl.GetHead().GetNextAt(0); current != nil; current = current.GetNextAt(0) {
		nodeLevel := int(current.GetLevel())
		for i := 0; i <= nodeLevel && i < len(levelCounts); i++ {
			levelCounts[i]++
		}
	}
	return levelCounts
}
