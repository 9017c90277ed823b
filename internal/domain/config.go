package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultCells replaces any non-positive or unparseable grid dimension.
const DefaultCells = 12

// MaxCells caps a grid dimension so the closing grid line, MaxCells+1, is
// still an int.
const MaxCells = math.MaxInt - 1

// GridConfig holds the normalized grid dimensions. Both fields are always >= 1.
type GridConfig struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// NewGridConfig returns the default 12x12 grid.
func NewGridConfig() GridConfig {
	return GridConfig{Columns: DefaultCells, Rows: DefaultCells}
}

// SetColumns normalizes value into Columns. Bad input silently becomes DefaultCells.
func (c *GridConfig) SetColumns(value string) {
	c.Columns = normalizeCells(value)
}

// SetRows normalizes value into Rows. Bad input silently becomes DefaultCells.
func (c *GridConfig) SetRows(value string) {
	c.Rows = normalizeCells(value)
}

// Normalize repairs dimensions assigned directly on the struct.
func (c *GridConfig) Normalize() {
	if c.Columns < 1 {
		c.Columns = DefaultCells
	}
	if c.Rows < 1 {
		c.Rows = DefaultCells
	}
	c.Columns = min(c.Columns, MaxCells)
	c.Rows = min(c.Rows, MaxCells)
}

func normalizeCells(value string) int {
	n, ok := ParseInt(value)
	if !ok || n < 1 {
		return DefaultCells
	}
	return min(n, MaxCells)
}

// ParseInt reads a base-10 integer the way declarative attributes have always
// been read: leading whitespace and an optional sign are skipped, then the
// longest run of digits is taken and anything after it ignored ("8px" is 8).
// Values past the int range saturate to math.MaxInt or math.MinInt. It reports
// false only when no digit follows.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if sign == "-" {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
