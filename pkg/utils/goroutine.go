package utils

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// GoSafe runs fn in a new goroutine and recovers from any panic it raises.
// Recovered panics go to the global zap logger (see zap.ReplaceGlobals).
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("Recovered from panic in goroutine",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
