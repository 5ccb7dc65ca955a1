package clock

import (
	"sync"
	"time"
)

// Manual es un Clock determinístico para tests: nada se dispara hasta Advance.
// Los callbacks corren en la goroutine que llama Advance, fuera del lock interno.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	entries []*manualEntry
}

type manualEntry struct {
	seq     uint64
	at      time.Time
	period  time.Duration
	fn      func()
	stopped bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(d time.Duration, fn func()) Stopper {
	return m.schedule(d, d, fn)
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Stopper {
	return m.schedule(d, 0, fn)
}

func (m *Manual) schedule(after, period time.Duration, fn func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	e := &manualEntry{
		seq:    m.seq,
		at:     m.now.Add(after),
		period: period,
		fn:     fn,
	}
	m.entries = append(m.entries, e)

	return stopFunc(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		e.stopped = true
		m.prune()
	})
}

// Advance mueve el reloj d hacia adelante disparando, en orden, todo lo vencido.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		m.now = next.at
		if next.period > 0 {
			next.at = next.at.Add(next.period)
		} else {
			next.stopped = true
			m.prune()
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending cuenta los timers aún activos.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Time) *manualEntry {
	var best *manualEntry
	for _, e := range m.entries {
		if e.stopped || e.at.After(target) {
			continue
		}
		if best == nil || e.at.Before(best.at) || (e.at.Equal(best.at) && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

func (m *Manual) prune() {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if !e.stopped {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}
