package mouse

import "time"

// ClickCounter groups successive clicks into sequences.
// It is not safe for concurrent use.
type ClickCounter struct {
	maxTime     time.Duration
	maxDistance int

	lastButton Button
	lastPos    Position
	lastTime   time.Time
	lastCount  int
}

// NewClickCounter creates a click counter using the given configuration.
func NewClickCounter(config Config) *ClickCounter {
	return &ClickCounter{
		maxTime:     config.DoubleClickTime,
		maxDistance: config.DoubleClickDistance,
	}
}

// Record records a completed click and returns its position in the current
// sequence (1 for a single click, 2 for a double click). Counts wrap back to 1
// after 2 so a triple click reads as a double click followed by a single one.
// A zero timestamp falls back to time.Now().
func (c *ClickCounter) Record(b Button, pos Position, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if c.isPartOfSequence(b, pos, timestamp) {
		c.lastCount++
		if c.lastCount > 2 {
			c.lastCount = 1
		}
	} else {
		c.lastCount = 1
	}

	c.lastButton = b
	c.lastPos = pos
	c.lastTime = timestamp

	return c.lastCount
}

func (c *ClickCounter) isPartOfSequence(b Button, pos Position, timestamp time.Time) bool {
	if c.lastCount == 0 || c.lastTime.IsZero() || b != c.lastButton {
		return false
	}

	// Clock skew: a negative interval starts a new sequence.
	elapsed := timestamp.Sub(c.lastTime)
	if elapsed < 0 || elapsed > c.maxTime {
		return false
	}

	return pos.Distance(c.lastPos) <= c.maxDistance
}

// Reset clears the click tracking state.
func (c *ClickCounter) Reset() {
	c.lastButton = ButtonNone
	c.lastCount = 0
	c.lastTime = time.Time{}
	c.lastPos = Position{}
}
