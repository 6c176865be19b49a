package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGoSafe_LogsRecoveredPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})
	<-done

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, "Recovered from panic in goroutine", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
}

func TestToPointer(t *testing.T) {
	p := ToPointer(9250.0)
	require.NotNil(t, p)
	assert.Equal(t, 9250.0, *p)
}
