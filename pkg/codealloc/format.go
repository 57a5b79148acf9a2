package codealloc

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders partition + zero-padded sequence.
//
//	Format("25", 7, 3)      == "25007"
//	Format("25001-", 2, 2)  == "25001-02"
func Format(partition string, seq int64, width int) string {
	return fmt.Sprintf("%s%0*d", partition, width, seq)
}

// Next returns the sequence that follows last within a partition.
//
// last is the greatest existing code for the partition, or "" when the
// partition is empty. The trailing width characters of last are parsed as a
// non-negative integer. When they cannot be parsed the sequence restarts at 1
// and ok is false so the caller can report it.
func Next(last string, width int) (seq int64, ok bool) {
	if last == "" {
		return 1, true
	}
	if width <= 0 || len(last) < width {
		return 1, false
	}

	suffix := last[len(last)-width:]
	if strings.IndexFunc(suffix, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 1, false
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 1, false
	}
	return n + 1, true
}

// Capacity is the largest sequence that still fits in width digits.
func Capacity(width int) int64 {
	c := int64(1)
	for i := 0; i < width; i++ {
		c *= 10
	}
	return c - 1
}

// likePrefix escapes LIKE metacharacters so the partition matches literally.
func likePrefix(partition string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(partition) + "%"
}
