package util

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_FiresAfterDelay(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })

	assert.Equal(t, int32(0), calls.Load())
	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, time.Millisecond)
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Value

	d.Trigger(func() { fired.Store("first") })
	d.Trigger(func() { fired.Store("second") })

	assert.Eventually(t, func() bool {
		v, ok := fired.Load().(string)
		return ok && v == "second"
	}, time.Second, time.Millisecond)

	// Первый колбэк отменен, второй выполнился ровно один раз
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "second", fired.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_ReusableAfterFire(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
}

func TestDebouncer_Delay(t *testing.T) {
	d := NewDebouncer(250 * time.Millisecond)

	assert.Equal(t, 250*time.Millisecond, d.Delay())
}
