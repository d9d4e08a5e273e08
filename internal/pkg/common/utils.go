package common

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// FormatSize 格式化尺寸為 "WxH"
func FormatSize(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatPoint 格式化座標為 "x,y"
func FormatPoint(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// Truncate 截斷過長的字串（用於日誌記錄），以 rune 計算不切斷多位元組字元
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
