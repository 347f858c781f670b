package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
)

func fastConfig() Config {
	return Config{
		Interval:     2 * time.Millisecond,
		Step:         10,
		Ceiling:      90,
		SuccessGrace: 40 * time.Millisecond,
		ErrorGrace:   120 * time.Millisecond,
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{Ceiling: 100}.withDefaults()
	assert.Equal(t, 200*time.Millisecond, c.Interval)
	assert.Equal(t, 10, c.Step)
	assert.Equal(t, 90, c.Ceiling)
	assert.Equal(t, time.Second, c.SuccessGrace)
	assert.Equal(t, 3*time.Second, c.ErrorGrace)
}

func TestTracker_StartAdvancesToCeiling(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	id := tr.Start("a.pdf")
	assert.True(t, strings.HasPrefix(id, "upload-"))

	rec, ok := tr.Get(id)
	require.True(t, ok)
	assert.Equal(t, model.UploadUploading, rec.Status)
	assert.Equal(t, "a.pdf", rec.FileName)

	assert.Eventually(t, func() bool {
		r, _ := tr.Get(id)
		return r.Progress == 90
	}, time.Second, 5*time.Millisecond)

	assert.Never(t, func() bool {
		r, _ := tr.Get(id)
		return r.Progress > 90 || r.Status != model.UploadUploading
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestTracker_StepClampedToCeiling(t *testing.T) {
	cfg := fastConfig()
	cfg.Step = 7
	tr := New(cfg)
	defer tr.Close()

	id := tr.Start("a.txt")
	assert.Eventually(t, func() bool {
		r, _ := tr.Get(id)
		return r.Progress == 90
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_CompleteThenRemoved(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	id := tr.Start("a.pdf")
	tr.Complete(id)

	rec, ok := tr.Get(id)
	require.True(t, ok)
	assert.Equal(t, 100, rec.Progress)
	assert.Equal(t, model.UploadCompleted, rec.Status)

	assert.Eventually(t, func() bool {
		_, ok := tr.Get(id)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_FailKeepsRecordLonger(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	id := tr.Start("bad.pdf")
	tr.Fail(id, "parser failed")

	rec, ok := tr.Get(id)
	require.True(t, ok)
	assert.Equal(t, model.UploadError, rec.Status)
	assert.Equal(t, "parser failed", rec.Error)
	assert.Less(t, rec.Progress, 100)

	time.Sleep(60 * time.Millisecond)
	_, ok = tr.Get(id)
	assert.True(t, ok, "error records outlive the success grace period")

	assert.Eventually(t, func() bool {
		_, ok := tr.Get(id)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_ReserveStaysPending(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	id := tr.Reserve("later.docx")
	time.Sleep(20 * time.Millisecond)

	rec, ok := tr.Get(id)
	require.True(t, ok)
	assert.Equal(t, model.UploadPending, rec.Status)
	assert.Equal(t, 0, rec.Progress)

	assert.True(t, tr.Begin(id))
	assert.False(t, tr.Begin(id))
	assert.False(t, tr.Begin("upload-missing"))
}

func TestTracker_RecordsAreIndependent(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	a := tr.Start("a.txt")
	b := tr.Start("b.txt")
	tr.Fail(a, "boom")

	rb, _ := tr.Get(b)
	assert.Equal(t, model.UploadUploading, rb.Status)

	list := tr.List()
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, b, list[1].ID)
}

func TestTracker_ListIsSnapshot(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	id := tr.Start("a.txt")
	snap := tr.List()
	tr.Complete(id)

	assert.Equal(t, model.UploadUploading, snap[0].Status)
}

func TestTracker_CloseCancelsTimers(t *testing.T) {
	tr := New(fastConfig())

	done := tr.Start("done.txt")
	running := tr.Start("running.txt")
	tr.Complete(done)
	tr.Close()

	time.Sleep(80 * time.Millisecond)
	_, ok := tr.Get(done)
	assert.True(t, ok, "removal is cancelled by Close")

	r1, _ := tr.Get(running)
	time.Sleep(20 * time.Millisecond)
	r2, _ := tr.Get(running)
	assert.Equal(t, r1.Progress, r2.Progress)

	assert.False(t, tr.Begin(tr.Reserve("after-close.txt")))
}

func TestTracker_UnknownIDIsNoop(t *testing.T) {
	tr := New(fastConfig())
	defer tr.Close()

	assert.NotPanics(t, func() {
		tr.Complete("nope")
		tr.Fail("nope", "x")
	})
	assert.Empty(t, tr.List())
}
