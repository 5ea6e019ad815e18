package hostport

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriverTicksUntilCancel(t *testing.T) {
	var ticks atomic.Uint32
	d := NewDriver(time.Millisecond, func() { ticks.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Run(ctx)
	assert.NoError(t, err)
	assert.Greater(t, ticks.Load(), uint32(0))
}

func TestDriverPropagatesISRError(t *testing.T) {
	d := NewDriver(time.Hour, func() {})

	boom := assertErr("boom")
	err := d.Run(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
