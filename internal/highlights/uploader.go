package highlights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/blob"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/metrics"
)

// UploadStatus is the lifecycle state of one queued upload.
type UploadStatus string

const (
	UploadIdle       UploadStatus = "idle"
	UploadUploading  UploadStatus = "uploading"
	UploadProcessing UploadStatus = "processing"
	UploadSuccess    UploadStatus = "success"
	UploadError      UploadStatus = "error"
)

// ErrUnknownUpload is returned for operations on an upload id that is not in
// the queue.
var ErrUnknownUpload = errors.New("unknown upload")

// Notifier is the subset of notification operations the uploader needs.
type Notifier interface {
	SendClipPublished(playerID, clipName, videoURL string, dryRun bool) error
	SendUploadFailed(playerID, fileName, reason string, dryRun bool) error
}

// UploadFile is one locally selected file handed to Enqueue.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadItem is the ephemeral, never-persisted state of one in-flight or
// queued upload.
type UploadItem struct {
	ID        string       `json:"id"`
	PlayerID  string       `json:"playerId"`
	Partition Partition    `json:"partition"`
	FileName  string       `json:"fileName"`
	ClipName  string       `json:"clipName"`
	LogoName  string       `json:"logoName,omitempty"`
	Progress  int          `json:"progress"`
	Status    UploadStatus `json:"status"`
	Error     string       `json:"error,omitempty"`

	data        []byte
	contentType string
	logoData    []byte
	logoType    string
	enqueuedAt  time.Time
	startedAt   time.Time
}

// UploadTiming bundles the queue's timer intervals so tests can shrink them.
type UploadTiming struct {
	// Tick is the progress animator interval.
	Tick time.Duration
	// RemoveAfter is how long a successful item stays visible.
	RemoveAfter time.Duration
	// CallbackAfter is the extra delay before the completion callback fires.
	CallbackAfter time.Duration
}

// DefaultUploadTiming mirrors the dashboard behavior: 300ms progress ticks,
// success rows linger 2s, the refetch callback runs 0.5s after removal.
var DefaultUploadTiming = UploadTiming{
	Tick:          300 * time.Millisecond,
	RemoveAfter:   2 * time.Second,
	CallbackAfter: 500 * time.Millisecond,
}

// Uploader accepts locally selected video files, uploads each independently
// and concurrently, and on success appends the resulting clip to the right
// partition of the player's highlights document. There is no concurrency cap
// and in-flight uploads are never cancelled; every failure is scoped to its
// own item.
type Uploader struct {
	mu        sync.Mutex
	items     map[string]*UploadItem
	animators map[string]chan struct{}

	blob     blob.Store
	manager  *Manager
	metrics  metrics.Metrics
	notifier Notifier
	events   events.Publisher

	// onPublished is invoked after a successful item has been removed from
	// the queue, so the caller can refetch the player.
	onPublished func(playerID string)

	timing UploadTiming
	now    func() time.Time
}

// NewUploader creates an upload queue with production timing.
func NewUploader(blobStore blob.Store, manager *Manager, m metrics.Metrics, n Notifier, ev events.Publisher, onPublished func(playerID string)) *Uploader {
	return NewUploaderWithTiming(blobStore, manager, m, n, ev, onPublished, DefaultUploadTiming)
}

// NewUploaderWithTiming creates an upload queue with explicit timer
// intervals. Useful for tests.
func NewUploaderWithTiming(blobStore blob.Store, manager *Manager, m metrics.Metrics, n Notifier, ev events.Publisher, onPublished func(playerID string), timing UploadTiming) *Uploader {
	if onPublished == nil {
		onPublished = func(string) {}
	}
	return &Uploader{
		items:       make(map[string]*UploadItem),
		animators:   make(map[string]chan struct{}),
		blob:        blobStore,
		manager:     manager,
		metrics:     m,
		notifier:    n,
		events:      ev,
		onPublished: onPublished,
		timing:      timing,
		now:         time.Now,
	}
}

// Enqueue creates one queue item per file and starts every upload
// immediately. It returns the new upload ids in file order.
func (u *Uploader) Enqueue(playerID string, p Partition, files []UploadFile) []string {
	ids := make([]string, 0, len(files))
	u.mu.Lock()
	for _, f := range files {
		item := &UploadItem{
			ID:          NewClipID(playerID, u.now()),
			PlayerID:    playerID,
			Partition:   p,
			FileName:    f.Name,
			ClipName:    ClipBaseName(f.Name),
			Status:      UploadIdle,
			data:        f.Data,
			contentType: f.ContentType,
			enqueuedAt:  u.now(),
		}
		u.items[item.ID] = item
		ids = append(ids, item.ID)
	}
	u.mu.Unlock()

	for _, id := range ids {
		go u.startUpload(id)
	}
	return ids
}

// AttachLogo stores a companion logo image alongside a queue entry. It has
// no effect once the entry has already succeeded.
func (u *Uploader) AttachLogo(uploadID, name string, data []byte, contentType string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	item, ok := u.items[uploadID]
	if !ok {
		return ErrUnknownUpload
	}
	if item.Status == UploadSuccess {
		return nil
	}
	item.LogoName = name
	item.logoData = data
	item.logoType = contentType
	return nil
}

// SetClipName updates the working title of a queued item, typically between
// a failure and a retry.
func (u *Uploader) SetClipName(uploadID, name string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	item, ok := u.items[uploadID]
	if !ok {
		return ErrUnknownUpload
	}
	if name != "" {
		item.ClipName = name
	}
	return nil
}

// Retry re-runs a failed upload with whatever the user has edited since the
// failure.
func (u *Uploader) Retry(uploadID string) error {
	u.mu.Lock()
	item, ok := u.items[uploadID]
	if !ok {
		u.mu.Unlock()
		return ErrUnknownUpload
	}
	// Only a failed item may rerun. Retrying during the success linger
	// window would append the clip a second time.
	if item.Status != UploadError {
		u.mu.Unlock()
		return fmt.Errorf("upload %s is not in a failed state", uploadID)
	}
	u.mu.Unlock()

	go u.startUpload(uploadID)
	return nil
}

// Remove stops an item's animator and drops it from the queue. Already
// persisted clips are unaffected.
func (u *Uploader) Remove(uploadID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stopAnimatorLocked(uploadID)
	delete(u.items, uploadID)
}

// Items returns a snapshot of the queue for one player (or all players when
// playerID is empty), oldest first.
func (u *Uploader) Items(playerID string) []UploadItem {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]UploadItem, 0, len(u.items))
	for _, item := range u.items {
		if playerID != "" && item.PlayerID != playerID {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].enqueuedAt.Before(out[j].enqueuedAt) })
	return out
}

// Get returns a snapshot of one queue item.
func (u *Uploader) Get(uploadID string) (UploadItem, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	item, ok := u.items[uploadID]
	if !ok {
		return UploadItem{}, false
	}
	return *item, true
}

// ActiveAnimators reports how many progress animators are running. Every
// terminal transition must bring this back down; see the liveness tests.
func (u *Uploader) ActiveAnimators() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.animators)
}

// startUpload drives one item through the whole lifecycle. Runs on its own
// goroutine; concurrent items interleave freely and only meet again inside
// the manager's compare-and-swap loop.
func (u *Uploader) startUpload(uploadID string) {
	u.mu.Lock()
	item, ok := u.items[uploadID]
	if !ok {
		u.mu.Unlock()
		return
	}
	item.Status = UploadUploading
	item.Progress = 1
	item.Error = ""
	item.startedAt = u.now()
	playerID := item.PlayerID
	partition := item.Partition
	fileName := item.FileName
	clipName := item.ClipName
	data := item.data
	contentType := item.contentType
	u.startAnimatorLocked(uploadID)
	u.mu.Unlock()

	u.metrics.IncUploadsStarted()
	ctx := context.Background()
	ts := u.now().UnixMilli()

	videoPath := fmt.Sprintf("highlights/%s_%d_%s", playerID, ts, SanitizeFileName(fileName))
	videoURL, err := u.blob.Upload(ctx, videoPath, data, contentType)
	if err != nil {
		u.fail(uploadID, playerID, fileName, fmt.Errorf("video upload failed: %w", err))
		return
	}

	// The logo is read after the video lands so one attached mid-upload
	// still makes it onto the clip. A failed logo upload never fails the
	// clip; the clip just goes out without one.
	u.mu.Lock()
	var logoName, logoType string
	var logoData []byte
	if item, ok := u.items[uploadID]; ok {
		logoName = item.LogoName
		logoData = item.logoData
		logoType = item.logoType
	}
	u.mu.Unlock()

	logoURL := ""
	if len(logoData) > 0 {
		logoPath := fmt.Sprintf("highlights/logos/%s_%d_logo_%s", playerID, ts, SanitizeFileName(logoName))
		logoURL, err = u.blob.Upload(ctx, logoPath, logoData, logoType)
		if err != nil {
			log.Warn("Logo upload failed, publishing clip without a logo", "uploadID", uploadID, "error", err)
			logoURL = ""
		}
	}

	u.mu.Lock()
	if item, ok := u.items[uploadID]; ok {
		item.Status = UploadProcessing
	}
	u.mu.Unlock()

	clip := Clip{
		ID:       NewClipID(playerID, u.now()),
		Name:     clipName,
		VideoURL: videoURL,
		ClubLogo: logoURL,
		AddedAt:  u.now().UTC().Format(time.RFC3339),
	}
	if err := u.manager.AppendClip(ctx, playerID, partition, clip); err != nil {
		u.fail(uploadID, playerID, fileName, fmt.Errorf("failed to save clip: %w", err))
		return
	}

	u.mu.Lock()
	u.stopAnimatorLocked(uploadID)
	if item, ok := u.items[uploadID]; ok {
		item.Status = UploadSuccess
		item.Progress = 100
	}
	started := item.startedAt
	u.mu.Unlock()

	u.metrics.IncUploadsCompleted()
	u.metrics.ObserveUploadDuration(u.now().Sub(started).Seconds())
	if err := u.notifier.SendClipPublished(playerID, clipName, videoURL, false); err != nil {
		log.Error("Failed to send clip-published notification", "error", err)
	}
	if err := u.events.SendMessage(events.EventClipPublished, events.ClipPublished{
		PlayerID:  playerID,
		Partition: string(partition),
		ClipID:    clip.ID,
		ClipName:  clipName,
		VideoURL:  videoURL,
	}); err != nil {
		log.Error("Failed to publish clip-published event", "error", err)
	}

	log.Info("Clip published", "playerID", playerID, "partition", partition, "clip", clipName)

	// Successful rows linger briefly, then the caller gets poked to refetch.
	time.AfterFunc(u.timing.RemoveAfter, func() {
		u.Remove(uploadID)
		time.AfterFunc(u.timing.CallbackAfter, func() {
			u.onPublished(playerID)
		})
	})
}

// fail parks an item in the error state with the underlying message so the
// user can retry without re-selecting the file.
func (u *Uploader) fail(uploadID, playerID, fileName string, err error) {
	log.Error("Upload failed", "uploadID", uploadID, "playerID", playerID, "error", err)
	u.mu.Lock()
	u.stopAnimatorLocked(uploadID)
	if item, ok := u.items[uploadID]; ok {
		item.Status = UploadError
		item.Error = err.Error()
	}
	u.mu.Unlock()

	u.metrics.IncUploadsFailed()
	if nerr := u.notifier.SendUploadFailed(playerID, fileName, err.Error(), false); nerr != nil {
		log.Error("Failed to send upload-failed notification", "error", nerr)
	}
	if perr := u.events.SendMessage(events.EventClipUploadFailed, events.ClipUploadFailed{
		PlayerID: playerID,
		FileName: fileName,
		Error:    err.Error(),
	}); perr != nil {
		log.Error("Failed to publish upload-failed event", "error", perr)
	}
}

// startAnimatorLocked replaces any running animator for the item with a
// fresh one, so a retry restarts its own timer. Caller holds u.mu.
func (u *Uploader) startAnimatorLocked(uploadID string) {
	u.stopAnimatorLocked(uploadID)
	stop := make(chan struct{})
	u.animators[uploadID] = stop

	// The percentage is a deliberate UX simulation: the blob upload is one
	// opaque request with no byte-level callback, so the bar creeps to 95
	// and jumps to 100 when the write actually lands.
	go func() {
		ticker := time.NewTicker(u.timing.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				u.mu.Lock()
				item, ok := u.items[uploadID]
				if !ok || (item.Status != UploadUploading && item.Status != UploadProcessing) {
					u.mu.Unlock()
					return
				}
				if item.Progress < 95 {
					item.Progress++
				}
				u.mu.Unlock()
			}
		}
	}()
}

// stopAnimatorLocked cancels the item's animator if one is running. Caller
// holds u.mu.
func (u *Uploader) stopAnimatorLocked(uploadID string) {
	if stop, ok := u.animators[uploadID]; ok {
		close(stop)
		delete(u.animators, uploadID)
	}
}
