package search

import (
	"sync"
	"time"

	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"
)

// DefaultSettleDelay is how long input must stay unchanged before it is evaluated.
const DefaultSettleDelay = 300 * time.Millisecond

// Result is the outcome of one evaluated pattern.
type Result struct {
	Pattern string
	Matcher *validation.Matcher // nil for a blank pattern
	Matches []models.Transaction
	Err     error // *ledgererror.PatternError when the pattern did not compile
}

// Live debounces interactive search: each Submit supersedes the pending
// one, and only a pattern left alone for the settle delay is evaluated.
type Live struct {
	filter   *Filter
	flags    string
	delay    time.Duration
	timeout  time.Duration
	onResult func(Result)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	stopped bool
	running sync.WaitGroup
}

// LiveOption configures a Live search.
type LiveOption func(*Live)

// WithSettleDelay sets the debounce delay.
func WithSettleDelay(d time.Duration) LiveOption {
	return func(l *Live) {
		if d >= 0 {
			l.delay = d
		}
	}
}

// WithFlags sets the pattern flags (default "i").
func WithFlags(flags string) LiveOption {
	return func(l *Live) { l.flags = flags }
}

// WithMatchTimeout bounds each match of the compiled pattern.
func WithMatchTimeout(d time.Duration) LiveOption {
	return func(l *Live) { l.timeout = d }
}

// NewLive returns a debounced search over f. onResult is called from a
// timer goroutine, once per evaluated pattern.
func (f *Filter) NewLive(onResult func(Result), opts ...LiveOption) *Live {
	l := &Live{
		filter:   f,
		flags:    validation.DefaultFlags,
		delay:    DefaultSettleDelay,
		onResult: onResult,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit schedules pattern for evaluation, cancelling any pending one.
func (l *Live) Submit(pattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.seq++
	seq := l.seq
	l.cancelTimer()
	l.pending = pattern
	l.running.Add(1)
	l.timer = time.AfterFunc(l.delay, func() {
		defer l.running.Done()
		l.run(seq, pattern)
	})
}

// cancelTimer stops the pending timer. Callers hold mu.
func (l *Live) cancelTimer() bool {
	if l.timer == nil {
		return false
	}
	stopped := l.timer.Stop()
	if stopped {
		l.running.Done()
	}
	l.timer = nil
	return stopped
}

// Flush evaluates the pending pattern now instead of after the settle delay,
// then waits for any evaluation already under way. It must not be called
// concurrently with Submit.
func (l *Live) Flush() {
	l.mu.Lock()
	fire := !l.stopped && l.cancelTimer()
	seq, pattern := l.seq, l.pending
	l.mu.Unlock()

	if fire {
		l.run(seq, pattern)
	}
	l.running.Wait()
}

// Stop discards pending work. Later submissions are ignored.
func (l *Live) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.cancelTimer()
}

func (l *Live) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.stopped && seq == l.seq
}

func (l *Live) run(seq uint64, pattern string) {
	if !l.current(seq) {
		return
	}
	res := l.evaluate(pattern)
	// A newer submission may have arrived while matching.
	if !l.current(seq) || l.onResult == nil {
		return
	}
	l.onResult(res)
}

func (l *Live) evaluate(pattern string) Result {
	res := Result{Pattern: pattern}
	if isBlank(pattern) {
		res.Matches = l.filter.Filter(nil)
		return res
	}
	m, err := validation.CompilePattern(pattern, l.flags)
	if err != nil {
		res.Err = err
		return res
	}
	if l.timeout > 0 {
		m = m.WithTimeout(l.timeout)
	}
	res.Matcher = m
	res.Matches = l.filter.Filter(m)
	return res
}
