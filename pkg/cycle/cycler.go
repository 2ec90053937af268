package cycle

// State of a Cycler.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Cycler walks through the summary lines of one scan.
type Cycler struct {
	summary Summary
	state   State
	step    int
}

// New returns an idle Cycler for summary.
func New(summary Summary) *Cycler {
	return &Cycler{summary: summary}
}

// Start begins a rotation and returns the line of step 0.
func (c *Cycler) Start() string {
	c.state = Running
	c.step = 1
	return c.summary.Line(0)
}

// Tick returns the next line. After the last step it returns the idle line
// with done set and the Cycler is idle again. Ticking an idle Cycler keeps
// returning the idle line.
func (c *Cycler) Tick() (line string, done bool) {
	if c.state == Idle {
		return IdleLine, true
	}
	if c.step < Steps {
		line = c.summary.Line(c.step)
		c.step++
		return line, false
	}
	c.state = Idle
	c.step = 0
	return IdleLine, true
}

// State reports whether a rotation is in progress.
func (c *Cycler) State() State {
	return c.state
}

// Step returns the step the next Tick will show.
func (c *Cycler) Step() int {
	return c.step
}
