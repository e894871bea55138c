package util

import (
	"math"
	"strconv"
)

// ParsePositiveInt 解析正整数，解析失败或不大于 0 时返回 def
func ParsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// PageOffset 计算分页偏移量，溢出时 ok 为 false
func PageOffset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 {
		return 0, true
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
