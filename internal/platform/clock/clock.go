package clock

import (
	"sync"
	"time"
)

// Stopper cancela un timer programado. Stop debe ser idempotente.
type Stopper interface {
	Stop()
}

// Clock programa callbacks repetitivos o de un solo disparo.
// En producción usa time.Ticker / time.AfterFunc; en tests se reemplaza por Manual.
type Clock interface {
	Now() time.Time
	Every(d time.Duration, fn func()) Stopper
	AfterFunc(d time.Duration, fn func()) Stopper
}

type stopFunc func()

func (f stopFunc) Stop() { f() }

type realClock struct{}

// Real devuelve el reloj del sistema.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Every(d time.Duration, fn func()) Stopper {
	t := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return stopFunc(func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	})
}

func (realClock) AfterFunc(d time.Duration, fn func()) Stopper {
	t := time.AfterFunc(d, fn)
	return stopFunc(func() { t.Stop() })
}
