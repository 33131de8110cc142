package datastream

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Dataset 表示一個測試資料檔
type Dataset struct {
	Path string
	// Name 為檔名，Distribution 為上一層目錄名稱
	Name         string
	Distribution string
	Values       []float64
	// Fingerprint 是原始檔案內容的 xxhash64
	Fingerprint uint64
}

// Len 回傳資料筆數
func (ds *Dataset) Len() int {
	return len(ds.Values)
}

// Load 讀取資料檔。以 SLDATA01 開頭視為二進位格式，其餘視為文字格式。
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var values []float64
	if bytes.HasPrefix(raw, dataMagic[:]) {
		values, err = decodeBinary(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else {
		values = parseText(raw)
	}

	return &Dataset{
		Path:         path,
		Name:         filepath.Base(path),
		Distribution: filepath.Base(filepath.Dir(path)),
		Values:       values,
		Fingerprint:  xxhash.Sum64(raw),
	}, nil
}

// Collect 收集 root 底下（遞迴）所有一般檔案，依路徑排序以確保順序一致
func Collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
