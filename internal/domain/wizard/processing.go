package wizard

import "pet-health-assessment/internal/domain/assessment"

const maxProgress = 100

// enterProcessingLocked arranca los dos ciclos (status y progreso) desde cero.
func (c *Controller) enterProcessingLocked() {
	c.exitProcessingLocked()

	gen := c.gen
	c.state.Progress = 0
	c.state.StatusIndex = 0

	c.statusTimer = c.clock.Every(c.timings.StatusInterval, func() { c.onStatusTick(gen) })
	c.progressTimer = c.clock.Every(c.timings.ProgressInterval, func() { c.onProgressTick(gen) })
}

// exitProcessingLocked cancela todo lo programado. Siempre seguro de llamar.
func (c *Controller) exitProcessingLocked() {
	c.gen++
	if c.statusTimer != nil {
		c.statusTimer.Stop()
		c.statusTimer = nil
	}
	if c.progressTimer != nil {
		c.progressTimer.Stop()
		c.progressTimer = nil
	}
	if c.graceTimer != nil {
		c.graceTimer.Stop()
		c.graceTimer = nil
	}
}

func (c *Controller) live(gen uint64) bool {
	return !c.disposed && c.gen == gen && c.state.Step == StepProcessing
}

func (c *Controller) onStatusTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return
	}
	c.state.StatusIndex = (c.state.StatusIndex + 1) % assessment.StatusCount()
}

func (c *Controller) onProgressTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) || c.state.Progress >= maxProgress {
		return
	}

	c.state.Progress = min(c.state.Progress+c.timings.ProgressStep, maxProgress)
	if c.state.Progress < maxProgress {
		return
	}

	if c.progressTimer != nil {
		c.progressTimer.Stop()
		c.progressTimer = nil
	}
	c.graceTimer = c.clock.AfterFunc(c.timings.GraceDelay, func() { c.onGraceElapsed(gen) })
}

func (c *Controller) onGraceElapsed(gen uint64) {
	c.mu.Lock()
	if !c.live(gen) {
		c.mu.Unlock()
		return
	}
	c.exitProcessingLocked()
	ev := c.setStepLocked(StepResults)
	c.mu.Unlock()

	c.emit(ev)
}
