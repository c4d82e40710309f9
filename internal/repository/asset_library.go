package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
)

// AssetLibrary holds the ordered promotional image collection. Images are
// opaque self-describing data strings; ordering is preserved and duplicates
// are allowed.
type AssetLibrary struct {
	mu     sync.RWMutex
	assets []string
	store  persistence.Store
	logger *zap.Logger
}

// NewAssetLibrary returns an asset library backed by the key-value store.
func NewAssetLibrary(store persistence.Store, logger *zap.Logger) *AssetLibrary {
	return &AssetLibrary{store: store, logger: logger}
}

// Load restores the persisted collection.
func (l *AssetLibrary) Load(ctx context.Context) {
	raw, err := l.store.Get(ctx, persistence.KeyAssets)
	if err != nil {
		l.logger.Warn("load asset collection", zap.Error(err))
		return
	}
	if len(raw) == 0 {
		return
	}
	var assets []string
	if err := json.Unmarshal(raw, &assets); err != nil {
		l.logger.Warn("decode asset collection", zap.Error(err))
		return
	}
	l.mu.Lock()
	l.assets = assets
	l.mu.Unlock()
}

// All returns a snapshot of the collection in insertion order.
func (l *AssetLibrary) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.assets...)
}

// Append adds an image to the end of the collection.
func (l *AssetLibrary) Append(ctx context.Context, dataURI string) {
	l.mu.Lock()
	l.assets = append(l.assets, dataURI)
	l.mu.Unlock()
	l.persist(ctx)
}

// RemoveAt deletes the image at the given index; out-of-range indexes are a
// silent no-op.
func (l *AssetLibrary) RemoveAt(ctx context.Context, index int) {
	l.mu.Lock()
	if index < 0 || index >= len(l.assets) {
		l.mu.Unlock()
		return
	}
	l.assets = append(l.assets[:index], l.assets[index+1:]...)
	l.mu.Unlock()
	l.persist(ctx)
}

func (l *AssetLibrary) persist(ctx context.Context) {
	l.mu.RLock()
	raw, err := json.Marshal(l.assets)
	l.mu.RUnlock()
	if err != nil {
		l.logger.Warn("encode asset collection", zap.Error(err))
		return
	}
	if err := l.store.Set(ctx, persistence.KeyAssets, raw); err != nil {
		l.logger.Warn("persist asset collection", zap.Error(err))
	}
}
