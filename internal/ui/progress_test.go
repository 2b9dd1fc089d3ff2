package ui

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressHandle_AbortKeepsCurrent(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	h := pm.Register("Ch.5")

	h.SetTotal(4)
	h.Update(1, 4, 100)
	h.Abort()
	h.MarkDone()
	pm.Wait()

	assert.True(t, h.bar.Aborted())
	assert.Equal(t, int64(1), h.bar.Current())
}

func TestProgressHandle_MarkDoneCompletes(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	h := pm.Register("Ch.6")

	h.SetTotal(3)
	h.Update(3, 3, 300)
	h.MarkDone()
	h.Abort()
	pm.Wait()

	assert.False(t, h.bar.Aborted())
	assert.True(t, h.bar.Completed())
	assert.Equal(t, int64(3), h.bar.Current())
}
