// Package progress tracks in-flight uploads with a simulated, monotonically increasing
// progress value. Real completion is signalled by the uploader; until then progress
// creeps towards a ceiling below 100.
package progress

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"docqa/internal/model"
)

// Config drives the simulation. Zero values fall back to the defaults.
type Config struct {
	Interval     time.Duration
	Step         int
	Ceiling      int
	SuccessGrace time.Duration
	ErrorGrace   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 200 * time.Millisecond
	}
	if c.Step <= 0 {
		c.Step = 10
	}
	if c.Ceiling <= 0 || c.Ceiling >= 100 {
		c.Ceiling = 90
	}
	if c.SuccessGrace <= 0 {
		c.SuccessGrace = time.Second
	}
	if c.ErrorGrace <= 0 {
		c.ErrorGrace = 3 * time.Second
	}
	return c
}

// Tracker owns the active upload records. Every mutation replaces the record slice, so
// snapshots returned by List are never modified afterwards.
type Tracker struct {
	cfg Config

	mu      sync.Mutex
	records []model.UploadProgress
	stops   map[string]chan struct{}
	timers  map[string]*time.Timer
	closed  bool

	wg sync.WaitGroup
}

func New(cfg Config) *Tracker {
	return &Tracker{
		cfg:    cfg.withDefaults(),
		stops:  make(map[string]chan struct{}),
		timers: make(map[string]*time.Timer),
	}
}

// Reserve registers a pending upload at 0% and returns its temporary id.
func (t *Tracker) Reserve(fileName string) string {
	id := "upload-" + uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(slices.Clone(t.records), model.UploadProgress{
		ID:       id,
		FileName: fileName,
		Status:   model.UploadPending,
	})
	return id
}

// Begin moves a reserved upload to uploading and starts advancing it.
// It returns false if the record is unknown, already started, or the tracker is closed.
func (t *Tracker) Begin(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	if _, running := t.stops[id]; running {
		return false
	}
	ok := t.replace(id, func(r model.UploadProgress) (model.UploadProgress, bool) {
		if r.Status != model.UploadPending {
			return r, false
		}
		r.Status = model.UploadUploading
		return r, true
	})
	if !ok {
		return false
	}

	stop := make(chan struct{})
	t.stops[id] = stop
	t.wg.Add(1)
	go t.run(id, stop)
	return true
}

// Start is Reserve followed by Begin.
func (t *Tracker) Start(fileName string) string {
	id := t.Reserve(fileName)
	t.Begin(id)
	return id
}

// Complete forces the record to 100% and removes it after the success grace period.
func (t *Tracker) Complete(id string) {
	t.finish(id, model.UploadCompleted, "", t.cfg.SuccessGrace)
}

// Fail marks the record as failed with message and removes it after the error grace period.
func (t *Tracker) Fail(id, message string) {
	t.finish(id, model.UploadError, message, t.cfg.ErrorGrace)
}

// Get returns a copy of one record.
func (t *Tracker) Get(id string) (model.UploadProgress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.UploadProgress{}, false
}

// List returns the active records in insertion order.
func (t *Tracker) List() []model.UploadProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.records)
}

// Close stops every ticker and pending removal. Records stay as they are.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	for id, stop := range t.stops {
		close(stop)
		delete(t.stops, id)
	}
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Tracker) run(id string, stop <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.advance(id) {
				return
			}
		}
	}
}

func (t *Tracker) advance(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.records, func(r model.UploadProgress) bool { return r.ID == id })
	if i < 0 || t.records[i].Status != model.UploadUploading {
		return false
	}
	if t.records[i].Progress >= t.cfg.Ceiling {
		return true
	}
	next := slices.Clone(t.records)
	next[i].Progress = min(next[i].Progress+t.cfg.Step, t.cfg.Ceiling)
	t.records = next
	return true
}

func (t *Tracker) finish(id string, status model.UploadStatus, message string, grace time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if stop, ok := t.stops[id]; ok {
		close(stop)
		delete(t.stops, id)
	}
	ok := t.replace(id, func(r model.UploadProgress) (model.UploadProgress, bool) {
		r.Status = status
		r.Error = message
		if status == model.UploadCompleted {
			r.Progress = 100
		}
		return r, true
	})
	if !ok || t.closed {
		return
	}

	if old, exists := t.timers[id]; exists {
		old.Stop()
	}
	t.timers[id] = time.AfterFunc(grace, func() { t.remove(id) })
}

func (t *Tracker) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.timers, id)
	t.records = slices.DeleteFunc(slices.Clone(t.records), func(r model.UploadProgress) bool {
		return r.ID == id
	})
}

// replace applies fn to the record with id and swaps in a new slice when fn reports a change.
// Callers hold t.mu.
func (t *Tracker) replace(id string, fn func(model.UploadProgress) (model.UploadProgress, bool)) bool {
	i := slices.IndexFunc(t.records, func(r model.UploadProgress) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	updated, changed := fn(t.records[i])
	if !changed {
		return false
	}
	next := slices.Clone(t.records)
	next[i] = updated
	t.records = next
	return true
}
