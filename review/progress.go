package review

// Tally accumulates answer results across one review session.
type Tally struct {
	served  int
	correct int
}

// Record adds one answered question to the tally.
func (t *Tally) Record(correct bool) {
	t.served++
	if correct {
		t.correct++
	}
}

// Served returns how many questions have been answered so far.
func (t *Tally) Served() int { return t.served }

// Correct returns how many of the answers were correct.
func (t *Tally) Correct() int { return t.correct }

// Accuracy returns the fraction of answers that were correct, 0 when
// nothing has been served yet.
func (t *Tally) Accuracy() float64 {
	if t.served == 0 {
		return 0
	}
	return float64(t.correct) / float64(t.served)
}
