package search

import (
	"sync"
	"testing"
	"time"

	"fjacquet/spendlog/internal/ledgererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	results []Result
	done    chan struct{}
}

func newCollector() *collector {
	return &collector{done: make(chan struct{}, 16)}
}

func (c *collector) add(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.done <- struct{}{}
}

func (c *collector) snapshot() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a search result")
	}
}

func TestLive_OnlyLastPatternIsEvaluated(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add, WithSettleDelay(50*time.Millisecond))
	defer live.Stop()

	for _, p := range []string{"c", "co", "cof", "bus"} {
		live.Submit(p)
	}
	c.wait(t)
	time.Sleep(100 * time.Millisecond)

	got := c.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "bus", got[0].Pattern)
	assert.Equal(t, []string{"2"}, ids(got[0].Matches))
	assert.NotNil(t, got[0].Matcher)
}

func TestLive_ReportsPatternError(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add, WithSettleDelay(time.Millisecond))
	defer live.Stop()

	live.Submit("[a-")
	c.wait(t)

	got := c.snapshot()
	require.Len(t, got, 1)
	var pe *ledgererror.PatternError
	assert.ErrorAs(t, got[0].Err, &pe)
	assert.Nil(t, got[0].Matches)
}

func TestLive_BlankPatternReturnsEverything(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add, WithSettleDelay(time.Millisecond), WithFlags(""))
	defer live.Stop()

	live.Submit("")
	c.wait(t)
	assert.Len(t, c.snapshot()[0].Matches, 3)
}

func TestLive_StopDiscardsPending(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add, WithSettleDelay(30*time.Millisecond))

	live.Submit("coffee")
	live.Stop()
	live.Submit("bus")
	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, c.snapshot())
}

func TestLive_MatchTimeout(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add,
		WithSettleDelay(time.Millisecond),
		WithMatchTimeout(10*time.Millisecond))
	defer live.Stop()

	live.Submit("rent")
	c.wait(t)
	assert.Equal(t, []string{"3"}, ids(c.snapshot()[0].Matches))
}

func TestLive_FlushEvaluatesPendingNow(t *testing.T) {
	c := newCollector()
	live := New(ledger(), nil).NewLive(c.add, WithSettleDelay(time.Hour))
	defer live.Stop()

	live.Submit("cof")
	live.Submit("bus")
	live.Flush()

	got := c.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "bus", got[0].Pattern)

	live.Flush()
	assert.Len(t, c.snapshot(), 1, "nothing left to evaluate")
}
