package bench

import (
	"fmt"
	"time"

	"github.com/Hakuto4838/nasp-skiplist/skiplist/basic"
)

// Config 是 benchmark 的設定，欄位名稱對應 CLI flag 與設定檔 key
type Config struct {
	DataDir     string  `mapstructure:"data-dir"`
	Output      string  `mapstructure:"out"`
	Summary     string  `mapstructure:"summary"`
	Runs        int     `mapstructure:"runs"`
	Policy      string  `mapstructure:"policy"`
	MaxLevel    int     `mapstructure:"max-level"`
	Probability float64 `mapstructure:"p"`
	Seed        int64   `mapstructure:"seed"`
	Steps       bool    `mapstructure:"steps"`
	LogLevel    string  `mapstructure:"log-level"`
	LogFile     string  `mapstructure:"log-file"`
}

func DefaultConfig() Config {
	return Config{
		DataDir:     "datasets",
		Output:      "results_skiplist.csv",
		Runs:        5,
		Policy:      "all",
		MaxLevel:    basic.DefaultMaxLevel,
		Probability: basic.DefaultProbability,
		Seed:        time.Now().UnixNano(),
		LogLevel:    "info",
	}
}

// Policies 解析設定中的 policy 列表
func (c Config) Policies() ([]Policy, error) {
	return ParsePolicies(c.Policy)
}

// Validate 檢查設定，回傳所有發現的錯誤
func (c Config) Validate() []error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("data-dir must not be empty"))
	}
	if c.Runs < 1 {
		errs = append(errs, fmt.Errorf("runs must be >= 1, got %d", c.Runs))
	}
	if c.MaxLevel < 0 || c.MaxLevel > 64 {
		errs = append(errs, fmt.Errorf("max-level must be within [0, 64], got %d", c.MaxLevel))
	}
	if !(c.Probability > 0 && c.Probability < 1) {
		errs = append(errs, fmt.Errorf("p must be within (0, 1), got %v", c.Probability))
	}
	if _, err := c.Policies(); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// String 以單行文字描述設定，供 log 使用
func (c Config) String() string {
	return fmt.Sprintf("data-dir=%s out=%s runs=%d policy=%s max-level=%d p=%v seed=%d",
		c.DataDir, c.Output, c.Runs, c.Policy, c.MaxLevel, c.Probability, c.Seed)
}
