// internal/scheduler/scheduler_test.go
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/sun2000-bridge/internal/publisher"
	"github.com/tamzrod/sun2000-bridge/internal/registers"
)

// ---- fakes ----

type fakeReader struct {
	mu     sync.Mutex
	values map[string]string // missing => unavailable
	reads  []string
}

func (f *fakeReader) Read(spec registers.Spec) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, spec.Name)
	v, ok := f.values[spec.Name]
	return v, ok
}

func (f *fakeReader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reads)
}

// recorder is shared by all fake publishers so cross-publisher order is visible.
type recorder struct{ calls []string }

type fakePublisher struct {
	name      string
	rec       *recorder
	connected bool
}

func (f *fakePublisher) Publish(register, value string) bool {
	f.rec.calls = append(f.rec.calls, fmt.Sprintf("%s publish %s=%s", f.name, register, value))
	return f.connected
}

func (f *fakePublisher) ServiceTick() { f.rec.calls = append(f.rec.calls, f.name+" tick") }
func (f *fakePublisher) ClearCache()  { f.rec.calls = append(f.rec.calls, f.name+" clear") }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

var testCatalogue = []registers.Spec{
	{Name: "dc1_voltage", Address: 32016, Scale: 0.1, Precision: registers.PrecisionTenths, Encoding: registers.SignedShort},
	{Name: "frequency", Address: 32085, Scale: 0.01, Precision: registers.PrecisionHundredths, Encoding: registers.SignedShort},
}

func newTestScheduler(t *testing.T, r Reader, pubs []Publisher) (*Scheduler, *fakeClock) {
	t.Helper()
	s, err := New(Config{Interval: 10 * time.Second, FlushInterval: time.Minute}, r, testCatalogue, pubs)
	require.NoError(t, err)

	clk := &fakeClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	s.now = clk.now
	s.lastFlush = clk.t
	return s, clk
}

// ---- tests ----

func TestNew_RejectsBadConfig(t *testing.T) {
	r := &fakeReader{}
	_, err := New(Config{Interval: 0, FlushInterval: time.Minute}, r, testCatalogue, nil)
	assert.Error(t, err)
	_, err = New(Config{Interval: time.Second, FlushInterval: 0}, r, testCatalogue, nil)
	assert.Error(t, err)
	_, err = New(Config{Interval: time.Second, FlushInterval: time.Minute}, nil, testCatalogue, nil)
	assert.Error(t, err)
	_, err = New(Config{Interval: time.Second, FlushInterval: time.Minute}, r, nil, nil)
	assert.Error(t, err)
}

func TestCycle_PublishesToEveryPublisherInOrder(t *testing.T) {
	rec := &recorder{}
	a := &fakePublisher{name: "a", rec: rec, connected: true}
	b := &fakePublisher{name: "b", rec: rec, connected: true}
	r := &fakeReader{values: map[string]string{"dc1_voltage": "230.1", "frequency": "50.00"}}

	s, _ := newTestScheduler(t, r, []Publisher{a, b})
	s.Cycle()

	assert.Equal(t, []string{
		"a publish dc1_voltage=230.1",
		"b publish dc1_voltage=230.1",
		"a publish frequency=50.00",
		"b publish frequency=50.00",
		"a tick",
		"b tick",
	}, rec.calls)
	assert.Equal(t, []string{"dc1_voltage", "frequency"}, r.reads, "each entry read exactly once")
}

func TestCycle_SkipsUnavailableRegister(t *testing.T) {
	rec := &recorder{}
	a := &fakePublisher{name: "a", rec: rec, connected: true}
	r := &fakeReader{values: map[string]string{"frequency": "50.00"}}

	s, _ := newTestScheduler(t, r, []Publisher{a})
	s.Cycle()

	assert.Equal(t, []string{"a publish frequency=50.00", "a tick"}, rec.calls)
}

func TestCycle_PeriodicFlush(t *testing.T) {
	rec := &recorder{}
	a := &fakePublisher{name: "a", rec: rec, connected: true}
	b := &fakePublisher{name: "b", rec: rec, connected: true}
	r := &fakeReader{values: map[string]string{}}

	s, clk := newTestScheduler(t, r, []Publisher{a, b})

	// not yet elapsed
	clk.advance(50 * time.Second)
	s.Cycle()
	assert.Equal(t, []string{"a tick", "b tick"}, rec.calls)

	// elapsed: every publisher cleared exactly once
	rec.calls = nil
	clk.advance(11 * time.Second)
	s.Cycle()
	assert.Equal(t, []string{"a tick", "a clear", "b tick", "b clear"}, rec.calls)

	// timer was reset
	rec.calls = nil
	clk.advance(10 * time.Second)
	s.Cycle()
	assert.Equal(t, []string{"a tick", "b tick"}, rec.calls)

	rec.calls = nil
	clk.advance(51 * time.Second)
	s.Cycle()
	assert.Equal(t, []string{"a tick", "a clear", "b tick", "b clear"}, rec.calls)
}

func TestCycle_FlushOncePerCycleNotPerRegister(t *testing.T) {
	rec := &recorder{}
	a := &fakePublisher{name: "a", rec: rec, connected: true}
	r := &fakeReader{values: map[string]string{"dc1_voltage": "1.0", "frequency": "2.00"}}

	s, clk := newTestScheduler(t, r, []Publisher{a})
	clk.advance(2 * time.Minute)
	s.Cycle()

	clears := 0
	for _, c := range rec.calls {
		if c == "a clear" {
			clears++
		}
	}
	assert.Equal(t, 1, clears)
}

func TestCycle_AllFailingCompletes(t *testing.T) {
	rec := &recorder{}
	a := &fakePublisher{name: "a", rec: rec, connected: false}
	r := &fakeReader{values: map[string]string{}}

	s, _ := newTestScheduler(t, r, []Publisher{a})

	assert.NotPanics(t, s.Cycle)
	assert.Equal(t, []string{"a tick"}, rec.calls, "nothing published when every read fails")
}

func TestCycle_DisconnectedPublishersNoNetwork(t *testing.T) {
	// real publisher over a transport that can never connect
	tr := &deadTransport{}
	p := publisher.New(publisher.Config{Name: "dead", Prefix: "x/"}, tr)
	r := &fakeReader{values: map[string]string{"dc1_voltage": "230.1", "frequency": "50.00"}}

	s, _ := newTestScheduler(t, r, []Publisher{p})
	s.Cycle()

	assert.Equal(t, 0, tr.publishes)
	assert.Equal(t, 2, tr.connects, "one connect attempt per offered reading")
	assert.False(t, p.Connected())
}

type deadTransport struct {
	connects  int
	publishes int
}

func (d *deadTransport) Connect() error {
	d.connects++
	return fmt.Errorf("dial tcp: connection refused")
}

func (d *deadTransport) Publish(string, []byte, bool) error {
	d.publishes++
	return nil
}

func (d *deadTransport) Service(time.Duration, func(), func()) {}

func TestRun_StopsOnCancel(t *testing.T) {
	r := &fakeReader{values: map[string]string{}}
	s, err := New(Config{Interval: 5 * time.Millisecond, FlushInterval: time.Minute}, r, testCatalogue, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return r.count() >= 2*len(testCatalogue) }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
