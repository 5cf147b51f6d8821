package logger

import (
	"fmt"
	"runtime"

	dumpx "github.com/gookit/goutil/dump"
)

// Dump pretty-prints values to stdout with the caller's position, for
// debug-mode inspection only.
func Dump(a ...any) {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		fmt.Printf("\033[32m%s:%d:\033[0m\n", file, line)
	}
	dumpx.P(a...)
}
