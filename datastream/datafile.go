package datastream

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// 二進位檔案格式（LittleEndian）：
// [8]byte  Magic: "SLDATA01"
// uint16   Version: 1
// uint16   Reserved: 0
// uint64   Count
// 重複 Count 次：
//   float64 Value

var (
	dataMagic   = [8]byte{'S', 'L', 'D', 'A', 'T', 'A', '0', '1'}
	dataVersion = uint16(1)

	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrTruncated          = errors.New("truncated data file")
)

const dataHeaderSize = 8 + 2 + 2 + 8

// decodeBinary 假設 raw 已以 dataMagic 開頭（由 Load 判斷）
func decodeBinary(raw []byte) ([]float64, error) {
	if len(raw) < dataHeaderSize {
		return nil, ErrTruncated
	}
	ver := binary.LittleEndian.Uint16(raw[8:10])
	if ver != dataVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, ver)
	}
	// raw[10:12] reserved
	count := binary.LittleEndian.Uint64(raw[12:20])
	body := raw[dataHeaderSize:]
	if count > uint64(len(body)/8) {
		return nil, fmt.Errorf("%w: header says %d values, body holds %d", ErrTruncated, count, len(body)/8)
	}

	values := make([]float64, count)
	if err := binary.Read(bytes.NewReader(body[:count*8]), binary.LittleEndian, values); err != nil {
		return nil, err
	}
	return values, nil
}

// parseText 將逗號視為空白後，像串流讀取 double 一樣依序解析：
// 只接受十進位數字（可含小數點與 e 指數），遇到無法解析的字元即停止，
// 已讀到的數字前綴（如 "12abc" 的 12）仍保留
func parseText(raw []byte) []float64 {
	content := strings.ReplaceAll(string(raw), ",", " ")
	var values []float64
	for pos := 0; ; {
		for pos < len(content) && isSpace(content[pos]) {
			pos++
		}
		if pos == len(content) {
			break
		}
		n, ok := scanDecimal(content[pos:])
		if !ok {
			break
		}
		v, err := strconv.ParseFloat(content[pos:pos+n], 64)
		if err != nil {
			break // 超出 float64 範圍
		}
		values = append(values, v)
		pos += n
	}
	return values
}

// scanDecimal 回傳 s 開頭符合 [+-]digits[.digits][(e|E)[+-]digits] 的長度
func scanDecimal(s string) (int, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return i, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			exp++
		}
		if exp == 0 {
			return i, false
		}
	}
	return i, true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// WriteBinary 將 values 寫成 SLDATA01 二進位檔
func WriteBinary(filename string, values []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := encodeBinary(w, values); err != nil {
		return err
	}
	return w.Flush()
}

func encodeBinary(w io.Writer, values []float64) error {
	if _, err := w.Write(dataMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(values))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, values)
}

// WriteText 將 values 以逗號分隔寫入文字檔，每行 perLine 筆（<=0 表示全部同一行）
func WriteText(filename string, values []float64, perLine int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if perLine <= 0 {
		perLine = len(values)
	}
	for i, v := range values {
		if i > 0 {
			if i%perLine == 0 {
				w.WriteByte('\n')
			} else {
				w.WriteByte(',')
			}
		}
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	if len(values) > 0 {
		w.WriteByte('\n')
	}
	return w.Flush()
}
