package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	clock := NewManualClock(start)
	assert.Equal(t, int64(1_700_000_000_000), NowMs(clock))

	clock.Advance(90 * time.Second)
	assert.Equal(t, int64(1_700_000_090_000), NowMs(clock))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"bolt", "mongo"}, "mongo"))
	assert.False(t, Contains([]string{"bolt", "mongo"}, "redis"))
	assert.False(t, Contains[int](nil, 1))
}
