package bench

import (
	"fmt"
	"strings"
)

// Policy 表示節點高度的指定方式
type Policy uint8

const (
	// PolicyRandom 以幾何分布隨機決定高度
	PolicyRandom Policy = iota
	// PolicyDeterministic 所有節點高度固定為 0，結構退化為有序單向鏈結串列
	PolicyDeterministic
)

func (p Policy) String() string {
	switch p {
	case PolicyRandom:
		return "Random"
	case PolicyDeterministic:
		return "Deterministic"
	default:
		return "Unknown"
	}
}

// Randomize 回傳插入時傳給 skip list 的 randomize 參數
func (p Policy) Randomize() bool {
	return p == PolicyRandom
}

// ParsePolicies 解析 "all" 或逗號分隔的 policy 名稱，保留輸入順序並去除重複
func ParsePolicies(s string) ([]Policy, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return []Policy{PolicyRandom, PolicyDeterministic}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Policy, 0, len(parts))
	seen := map[Policy]bool{}
	for _, part := range parts {
		var p Policy
		switch strings.TrimSpace(part) {
		case "":
			continue
		case "random":
			p = PolicyRandom
		case "deterministic":
			p = PolicyDeterministic
		default:
			return nil, fmt.Errorf("unknown policy: %q", part)
		}
		if !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no policy in %q", s)
	}
	return out, nil
}
