package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/engine"
)

// fakeAssetStore implements engine.AssetStore with a scripted sequence of
// states returned by successive GetState calls
type fakeAssetStore struct {
	mu          sync.Mutex
	states      []engine.AssetState
	pollErrs    int
	uploads     int
	polls       int
	deletes     int
	uploadErr   error
	uploadState engine.AssetState
}

func (f *fakeAssetStore) Upload(ctx context.Context, r io.Reader, mimeType string) (*engine.AssetHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	state := f.uploadState
	if state == "" {
		state = engine.AssetProcessing
	}
	return &engine.AssetHandle{
		Name:     "files/test-asset",
		URI:      "https://assets.example/files/test-asset",
		MIMEType: mimeType,
		State:    state,
	}, nil
}

func (f *fakeAssetStore) GetState(ctx context.Context, name string) (*engine.AssetHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.pollErrs > 0 {
		f.pollErrs--
		return nil, fmt.Errorf("transient poll failure")
	}
	state := engine.AssetProcessing
	if len(f.states) > 0 {
		state = f.states[0]
		if len(f.states) > 1 {
			f.states = f.states[1:]
		}
	}
	return &engine.AssetHandle{Name: name, URI: "https://assets.example/" + name, State: state}, nil
}

func (f *fakeAssetStore) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func TestAwaitReady_TransitionsToActive(t *testing.T) {
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetProcessing, engine.AssetProcessing, engine.AssetActive},
	}
	m := NewAssetManager(store, time.Millisecond, 500*time.Millisecond)

	handle, err := m.Upload(context.Background(), []byte("payload"), "video/mp4")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	ready, err := m.AwaitReady(context.Background(), handle)
	if err != nil {
		t.Fatalf("AwaitReady failed: %v", err)
	}
	if ready.State != engine.AssetActive {
		t.Errorf("Expected ACTIVE state, got %s", ready.State)
	}
}

func TestAwaitReady_FailedAsset(t *testing.T) {
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetProcessing, engine.AssetFailed},
	}
	m := NewAssetManager(store, time.Millisecond, 500*time.Millisecond)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "video/mp4")

	_, err := m.AwaitReady(context.Background(), handle)
	if !errors.Is(err, ErrAssetFailed) {
		t.Errorf("Expected ErrAssetFailed, got %v", err)
	}
}

func TestAwaitReady_TimeoutWhileProcessing(t *testing.T) {
	store := &fakeAssetStore{
		states: []engine.AssetState{engine.AssetProcessing},
	}
	m := NewAssetManager(store, time.Millisecond, 20*time.Millisecond)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "audio/wav")

	_, err := m.AwaitReady(context.Background(), handle)
	if !errors.Is(err, ErrAssetTimeout) {
		t.Errorf("Expected ErrAssetTimeout, got %v", err)
	}
}

func TestAwaitReady_PollErrorsDoNotAbort(t *testing.T) {
	store := &fakeAssetStore{
		pollErrs: 3,
		states:   []engine.AssetState{engine.AssetActive},
	}
	m := NewAssetManager(store, time.Millisecond, 500*time.Millisecond)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "audio/wav")

	ready, err := m.AwaitReady(context.Background(), handle)
	if err != nil {
		t.Fatalf("Expected poll errors to be tolerated, got %v", err)
	}
	if ready.State != engine.AssetActive {
		t.Errorf("Expected ACTIVE state, got %s", ready.State)
	}
	if store.polls < 4 {
		t.Errorf("Expected polling to continue past errors, got %d polls", store.polls)
	}
}

func TestAwaitReady_AlreadyActive(t *testing.T) {
	store := &fakeAssetStore{uploadState: engine.AssetActive}
	m := NewAssetManager(store, time.Millisecond, 500*time.Millisecond)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "image/png")

	ready, err := m.AwaitReady(context.Background(), handle)
	if err != nil {
		t.Fatalf("AwaitReady failed: %v", err)
	}
	if store.polls != 0 {
		t.Errorf("Expected no polls for an already-active asset, got %d", store.polls)
	}
	if ready.State != engine.AssetActive {
		t.Errorf("Expected ACTIVE state, got %s", ready.State)
	}
}

func TestAwaitReady_ContextCancellation(t *testing.T) {
	store := &fakeAssetStore{}
	m := NewAssetManager(store, 10*time.Millisecond, time.Minute)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "video/mp4")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.AwaitReady(ctx, handle)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDiscard(t *testing.T) {
	store := &fakeAssetStore{}
	m := NewAssetManager(store, time.Millisecond, time.Second)

	handle, _ := m.Upload(context.Background(), []byte("payload"), "video/mp4")
	m.Discard(context.Background(), handle)

	if store.deletes != 1 {
		t.Errorf("Expected exactly one delete, got %d", store.deletes)
	}

	// nil handle is a no-op
	m.Discard(context.Background(), nil)
	if store.deletes != 1 {
		t.Errorf("Expected nil discard to be a no-op, got %d deletes", store.deletes)
	}
}
