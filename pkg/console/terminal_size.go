package console

import (
	"os"
	"strconv"
)

// Size used when neither the device nor the environment knows better
const (
	fallbackCols = 80
	fallbackRows = 24
)

// sizeFromEnv reads COLUMNS and LINES, which shells export even when the
// output is redirected. Missing or invalid values fall back to 80x24.
func sizeFromEnv() (cols, rows int) {
	cols, rows = fallbackCols, fallbackRows
	if w, ok := positiveEnv("COLUMNS"); ok {
		cols = w
	}
	if h, ok := positiveEnv("LINES"); ok {
		rows = h
	}
	return cols, rows
}

func positiveEnv(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// usableSize replaces a zero or negative dimension, as reported by a pty
// that never had its window size set, with the environment fallback.
func usableSize(cols, rows int) (int, int) {
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	envCols, envRows := sizeFromEnv()
	if cols <= 0 {
		cols = envCols
	}
	if rows <= 0 {
		rows = envRows
	}
	return cols, rows
}
