/*
Package cycle rotates a six step project summary through a display and
decides when the next scan is due.

A Cycler is a small state machine:

	Idle --Start--> Running(0) --Tick--> Running(1) ... Running(5) --Tick--> Idle

Start returns the first line. Each Tick returns the next one, and the tick
after the last step returns the idle line with done set. The caller drives
ticks from a Scheduler:

	sched := cycle.NewScheduler(clockwork.NewRealClock())
	c := cycle.New(cycle.NewSummary(ps))

	display.Show(c.Start())
	sched.Repeat(settings.Explore())

	for range sched.Ticks() {
		line, done := c.Tick()
		display.Show(line)
		if done {
			sched.ClearRepeat()
			sched.Once(settings.ReExplore())
			break
		}
	}

The Scheduler owns at most one repeating ticker and one one-shot timer.
Arming either of them stops the previous instance first, so timer chains of
consecutive scans never overlap. A Scheduler is not safe for concurrent use;
it is meant to be owned by a single event loop.
*/
package cycle
