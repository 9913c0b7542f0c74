package trace

import (
	"strconv"
	"sync"
	"time"
)

// active tracks spans that began and have not ended yet.
var active = &spanRegistry{spans: make(map[uint64]*Span)}

type spanRegistry struct {
	mu    sync.Mutex
	spans map[uint64]*Span
}

func (r *spanRegistry) add(s *Span) {
	r.mu.Lock()
	r.spans[s.id] = s
	r.mu.Unlock()
}

func (r *spanRegistry) remove(s *Span) {
	r.mu.Lock()
	delete(r.spans, s.id)
	r.mu.Unlock()
}

// Activity is a snapshot of unfinished spans.
type Activity struct {
	Open    map[Scope]int // open spans per scope
	Oldest  string        // name of the longest-running span, "" when idle
	Running time.Duration // how long Oldest has been running
}

// CurrentActivity reports the spans that are still open.
func CurrentActivity(now time.Time) Activity {
	active.mu.Lock()
	defer active.mu.Unlock()
	act := Activity{Open: make(map[Scope]int)}
	var oldest *Span
	for _, s := range active.spans {
		act.Open[s.scope]++
		if oldest == nil || s.started.Before(oldest.started) {
			oldest = s
		}
	}
	if oldest != nil {
		act.Oldest = oldest.scope.String() + ":" + oldest.name
		act.Running = now.Sub(oldest.started)
	}
	return act
}

func (a Activity) extra() map[string]string {
	out := map[string]string{
		"commands":  strconv.Itoa(a.Open[ScopeCommand]),
		"documents": strconv.Itoa(a.Open[ScopeDocument]),
		"regions":   strconv.Itoa(a.Open[ScopeRegion]),
	}
	if a.Oldest != "" {
		out["oldest"] = a.Oldest
		out["running"] = a.Running.Round(time.Millisecond).String()
	}
	return out
}

// Heartbeat emits a liveness event at a fixed interval while lsp or watch
// runs. Each beat lists the open command, document and region spans and the
// oldest of them, so a document stuck in analysis shows up by name.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// StartHeartbeat starts beating; it returns nil when tracing is off or
// interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: tracer, interval: interval, done: make(chan struct{})}
	h.wg.Add(1)
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.beat(beat, now)
		case <-h.done:
			return
		}
	}
}

func (h *Heartbeat) beat(n int, now time.Time) {
	act := CurrentActivity(now)
	h.tracer.Emit(&Event{
		Time:   now,
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeCommand,
		GID:    getGoroutineID(),
		Name:   "heartbeat",
		Detail: "#" + strconv.Itoa(n),
		Extra:  act.extra(),
	})
}

// Stop ends the heartbeat and waits for the goroutine. Safe on nil and
// safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.done) })
	h.wg.Wait()
}
