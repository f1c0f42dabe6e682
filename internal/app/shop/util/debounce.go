package util

import (
	"sync"
	"time"
)

// Debouncer - отменяемый отложенный колбек с фиксированной задержкой
// Повторный Trigger отменяет еще не сработавший таймер (last-write-wins),
// очереди нет. Используется для debounce поиска (250ms) и синтетического
// индикатора загрузки (350ms)
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer создает Debouncer с заданной задержкой
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger планирует вызов fn через задержку,
// отменяя любой ранее запланированный вызов
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel отменяет запланированный вызов, если он есть
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Delay возвращает задержку таймера
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
