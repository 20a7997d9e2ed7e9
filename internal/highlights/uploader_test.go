package highlights_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/onsideagency/touchline/internal/blob"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/highlights"
	"github.com/onsideagency/touchline/internal/metrics"
	"github.com/onsideagency/touchline/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTiming keeps the queue's timers short enough for tests.
var testTiming = highlights.UploadTiming{
	Tick:          time.Millisecond,
	RemoveAfter:   10 * time.Millisecond,
	CallbackAfter: 5 * time.Millisecond,
}

type uploaderFixture struct {
	uploader *highlights.Uploader
	manager  *highlights.Manager
	store    *fakeStore
	blob     *blob.Mock
	metrics  *metrics.Mock
	notifier *notifier.Mock
	events   *events.MockPublisher

	mu        sync.Mutex
	published []string
}

func setupUploader(t *testing.T) *uploaderFixture {
	t.Helper()
	f := &uploaderFixture{
		store:    &fakeStore{},
		blob:     blob.NewMock(),
		metrics:  metrics.NewMock(),
		notifier: notifier.NewMock(),
		events:   events.NewMock(),
	}
	f.manager = highlights.NewManager(f.store, f.metrics)
	f.uploader = highlights.NewUploaderWithTiming(f.blob, f.manager, f.metrics, f.notifier, f.events, func(playerID string) {
		f.mu.Lock()
		f.published = append(f.published, playerID)
		f.mu.Unlock()
	}, testTiming)
	return f
}

func (f *uploaderFixture) publishedCallbacks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestUploadLifecycleSuccess(t *testing.T) {
	f := setupUploader(t)

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "goal.mp4", ContentType: "video/mp4", Data: []byte("video-bytes")},
	})
	require.Len(t, ids, 1)

	// The item succeeds, lingers, then disappears from the queue.
	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal after success")

	// The clip landed in the requested partition with the file's base name.
	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, col.MatchHighlights, 1)
	clip := col.MatchHighlights[0]
	assert.Equal(t, "goal", clip.Name)
	assert.Contains(t, clip.VideoURL, "https://blob.test/highlights/")
	assert.Contains(t, clip.VideoURL, "goal.mp4")
	assert.Empty(t, clip.ClubLogo)
	assert.NotEmpty(t, clip.ID)
	assert.NotEmpty(t, clip.AddedAt)

	// Completion callback fires after the removal delay.
	waitFor(t, func() bool {
		return len(f.publishedCallbacks()) == 1
	}, "completion callback")
	assert.Equal(t, []string{"p1"}, f.publishedCallbacks())

	assert.Equal(t, 1, f.metrics.UploadsStarted())
	assert.Equal(t, 1, f.metrics.UploadsCompleted())
	require.Len(t, f.notifier.ClipsPublished(), 1)
	assert.Equal(t, "goal", f.notifier.ClipsPublished()[0].ClipName)

	sent := f.events.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, string(events.EventClipPublished), sent[0].Topic)

	waitFor(t, func() bool { return f.uploader.ActiveAnimators() == 0 }, "animator shutdown")
}

func TestUploadFailureStaysInQueue(t *testing.T) {
	f := setupUploader(t)
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		return "", errors.New("bucket unavailable")
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "miss.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})

	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Status == highlights.UploadError
	}, "error state")

	item, _ := f.uploader.Get(ids[0])
	assert.Contains(t, item.Error, "bucket unavailable")

	// Failed items stay put until the user retries or removes them.
	time.Sleep(5 * testTiming.RemoveAfter)
	_, ok := f.uploader.Get(ids[0])
	assert.True(t, ok)

	// Nothing was appended to the document.
	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, col.MatchHighlights)

	assert.Equal(t, 1, f.metrics.UploadsFailed())
	require.Len(t, f.notifier.UploadsFailed(), 1)
	assert.Equal(t, "miss.mp4", f.notifier.UploadsFailed()[0].FileName)
	assert.Empty(t, f.publishedCallbacks())

	waitFor(t, func() bool { return f.uploader.ActiveAnimators() == 0 }, "animator shutdown")
}

func TestRetryAfterFailureUsesEditedName(t *testing.T) {
	f := setupUploader(t)
	var failed bool
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		if !failed {
			failed = true
			return "", errors.New("transient")
		}
		return f.blob.PublicURL(path), nil
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionBest, []highlights.UploadFile{
		{Name: "screamer.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})

	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Status == highlights.UploadError
	}, "error state")

	// The user renames the clip while it sits in the error state, then retries.
	require.NoError(t, f.uploader.SetClipName(ids[0], "Worldie vs Rovers"))
	require.NoError(t, f.uploader.Retry(ids[0]))

	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal after retried success")

	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, col.BestClips, 1)
	assert.Equal(t, "Worldie vs Rovers", col.BestClips[0].Name)
}

func TestRetryUnknownAndInFlight(t *testing.T) {
	f := setupUploader(t)
	assert.ErrorIs(t, f.uploader.Retry("nope"), highlights.ErrUnknownUpload)

	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		<-release
		return f.blob.PublicURL(path), nil
	}
	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "slow.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})

	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Status == highlights.UploadUploading
	}, "uploading state")

	// An in-flight item cannot be retried.
	assert.Error(t, f.uploader.Retry(ids[0]))

	close(release)
	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal")
}

func TestRetryDuringSuccessLingerRejected(t *testing.T) {
	f := setupUploader(t)
	linger := highlights.UploadTiming{
		Tick:          time.Millisecond,
		RemoveAfter:   time.Second,
		CallbackAfter: 5 * time.Millisecond,
	}
	f.uploader = highlights.NewUploaderWithTiming(f.blob, f.manager, f.metrics, f.notifier, f.events, nil, linger)

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "goal.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})

	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Status == highlights.UploadSuccess
	}, "success state")

	// A lingering success item must not rerun, or its clip would land twice.
	assert.Error(t, f.uploader.Retry(ids[0]))

	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, col.MatchHighlights, 1)
}

func TestAttachLogoUploadsAlongsideVideo(t *testing.T) {
	f := setupUploader(t)
	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		if strings.Contains(path, "logos/") {
			return f.blob.PublicURL(path), nil
		}
		<-release
		return f.blob.PublicURL(path), nil
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "goal.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})
	require.NoError(t, f.uploader.AttachLogo(ids[0], "club.png", []byte("logo"), "image/png"))
	close(release)

	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal")

	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, col.MatchHighlights, 1)
	assert.Contains(t, col.MatchHighlights[0].ClubLogo, "highlights/logos/")
	assert.Contains(t, col.MatchHighlights[0].ClubLogo, "club.png")
}

func TestLogoFailureDoesNotFailClip(t *testing.T) {
	f := setupUploader(t)
	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		if strings.Contains(path, "logos/") {
			return "", errors.New("logo bucket down")
		}
		<-release
		return f.blob.PublicURL(path), nil
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "goal.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})
	require.NoError(t, f.uploader.AttachLogo(ids[0], "club.png", []byte("logo"), "image/png"))
	close(release)

	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal")

	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, col.MatchHighlights, 1)
	assert.Empty(t, col.MatchHighlights[0].ClubLogo)
	assert.Equal(t, 1, f.metrics.UploadsCompleted())
	assert.Equal(t, 0, f.metrics.UploadsFailed())
}

func TestIndependentItemsFailIndependently(t *testing.T) {
	f := setupUploader(t)
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		if strings.Contains(path, "bad.mp4") {
			return "", errors.New("broken file")
		}
		return f.blob.PublicURL(path), nil
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "good.mp4", ContentType: "video/mp4", Data: []byte("a")},
		{Name: "bad.mp4", ContentType: "video/mp4", Data: []byte("b")},
	})
	require.Len(t, ids, 2)

	// The good one publishes and leaves; the bad one parks in error.
	waitFor(t, func() bool {
		_, goodGone := f.uploader.Get(ids[0])
		item, ok := f.uploader.Get(ids[1])
		return !goodGone && ok && item.Status == highlights.UploadError
	}, "mixed outcome")

	col, err := f.manager.Collection(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, col.MatchHighlights, 1)
	assert.Equal(t, "good", col.MatchHighlights[0].Name)
}

func TestItemsSnapshotFiltersAndSorts(t *testing.T) {
	f := setupUploader(t)
	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		<-release
		return f.blob.PublicURL(path), nil
	}
	defer close(release)

	f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "one.mp4", ContentType: "video/mp4", Data: []byte("1")},
	})
	f.uploader.Enqueue("p2", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "two.mp4", ContentType: "video/mp4", Data: []byte("2")},
	})

	assert.Len(t, f.uploader.Items(""), 2)
	p1Items := f.uploader.Items("p1")
	require.Len(t, p1Items, 1)
	assert.Equal(t, "one.mp4", p1Items[0].FileName)
}

func TestProgressAnimatorCreepsAndCaps(t *testing.T) {
	f := setupUploader(t)
	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		<-release
		return f.blob.PublicURL(path), nil
	}

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "long.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})

	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Progress > 1
	}, "progress movement")

	// Left running long enough, the bar parks at 95 and never reaches 100.
	waitFor(t, func() bool {
		item, ok := f.uploader.Get(ids[0])
		return ok && item.Progress == 95
	}, "progress cap")
	time.Sleep(20 * testTiming.Tick)
	item, _ := f.uploader.Get(ids[0])
	assert.Equal(t, 95, item.Progress)
	assert.Equal(t, 1, f.uploader.ActiveAnimators())

	close(release)
	waitFor(t, func() bool {
		_, ok := f.uploader.Get(ids[0])
		return !ok
	}, "item removal")
	waitFor(t, func() bool { return f.uploader.ActiveAnimators() == 0 }, "animator shutdown")
}

func TestRemoveStopsAnimator(t *testing.T) {
	f := setupUploader(t)
	release := make(chan struct{})
	f.blob.UploadFunc = func(path string, data []byte, contentType string) (string, error) {
		<-release
		return f.blob.PublicURL(path), nil
	}
	defer close(release)

	ids := f.uploader.Enqueue("p1", highlights.PartitionMatch, []highlights.UploadFile{
		{Name: "gone.mp4", ContentType: "video/mp4", Data: []byte("x")},
	})
	waitFor(t, func() bool { return f.uploader.ActiveAnimators() == 1 }, "animator start")

	f.uploader.Remove(ids[0])
	assert.Equal(t, 0, f.uploader.ActiveAnimators())
	_, ok := f.uploader.Get(ids[0])
	assert.False(t, ok)
}
