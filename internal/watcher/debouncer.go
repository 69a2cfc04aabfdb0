package watcher

import (
	"fmt"
	"sync"
	"time"
)

type debouncer struct {
	delay    time.Duration
	timer    *time.Timer
	mutex    sync.Mutex
	stopped  bool
	stopChan chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:    delay,
		stopChan: make(chan struct{}),
	}
}

func (d *debouncer) trigger(handler ReanalyzeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(handler)
	})
}

func (d *debouncer) fire(handler ReanalyzeHandler) {
	d.mutex.Lock()
	if d.stopped {
		d.mutex.Unlock()
		return
	}
	d.mutex.Unlock()

	if err := handler(); err != nil {
		// Will add better error handling later on for now just print
		fmt.Printf("Handler error: %v\n", err)
	}
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.stopChan)
}
