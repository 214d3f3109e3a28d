package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/engine"
)

// Terminal failures of the asset readiness wait
var (
	ErrAssetFailed  = errors.New("asset processing failed")
	ErrAssetTimeout = errors.New("asset processing timed out")
)

// AssetManager moves local media bytes into the engine's asset store and
// blocks until the remote asset reaches a terminal state. Intermediate
// states never leave this component: callers see an ACTIVE handle or a
// terminal error.
type AssetManager struct {
	store        engine.AssetStore
	pollInterval time.Duration
	maxWait      time.Duration
}

// NewAssetManager creates an asset lifecycle manager
func NewAssetManager(store engine.AssetStore, pollInterval, maxWait time.Duration) *AssetManager {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if maxWait <= 0 {
		maxWait = 300 * time.Second
	}
	return &AssetManager{
		store:        store,
		pollInterval: pollInterval,
		maxWait:      maxWait,
	}
}

// Upload pushes the bytes to the remote store. The returned handle is
// typically still PROCESSING and must go through AwaitReady before use.
func (m *AssetManager) Upload(ctx context.Context, data []byte, mimeType string) (*engine.AssetHandle, error) {
	handle, err := m.store.Upload(ctx, bytes.NewReader(data), mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}
	return handle, nil
}

// AwaitReady polls the asset state on a fixed interval until it becomes
// ACTIVE, fails, or the wait budget is exhausted. Transient poll errors are
// logged and polling continues; only the overall deadline aborts the wait.
func (m *AssetManager) AwaitReady(ctx context.Context, handle *engine.AssetHandle) (*engine.AssetHandle, error) {
	if handle.State == engine.AssetActive {
		return handle, nil
	}
	if handle.State == engine.AssetFailed {
		return nil, ErrAssetFailed
	}

	deadline := time.Now().Add(m.maxWait)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %s", ErrAssetTimeout, m.maxWait)
		}

		current, err := m.store.GetState(ctx, handle.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: asset state poll failed: %v\n", err)
			continue
		}

		switch current.State {
		case engine.AssetActive:
			return current, nil
		case engine.AssetFailed:
			return nil, ErrAssetFailed
		}
	}
}

// Discard removes the remote asset, best effort
func (m *AssetManager) Discard(ctx context.Context, handle *engine.AssetHandle) {
	if handle == nil || handle.Name == "" {
		return
	}
	if err := m.store.Delete(ctx, handle.Name); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: asset cleanup failed: %v\n", err)
	}
}
