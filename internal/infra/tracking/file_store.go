// Package tracking persists the post-purchase tracking bundle between the
// checkout and post-purchase flows.
package tracking

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"sprout/config"
	"sprout/internal/domain/service"
	"sprout/internal/errors"

	"go.uber.org/fx"
)

type fileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// Params holds dependencies for the tracking store, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewFileStore creates the file-backed tracking store.
func NewFileStore(params Params) service.TrackingStore {
	return &fileStore{
		path:   params.Config.Tracking.Path,
		logger: params.Logger,
	}
}

func (s *fileStore) Put(bundle service.PurchaseBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(bundle)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return errors.Wrap(err, "write tracking bundle")
	}

	return nil
}

// Take consumes the bundle: the file is removed whether or not its contents
// parse, so a corrupt bundle can never replay.
func (s *fileStore) Take() (*service.PurchaseBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	if err := os.Remove(s.path); err != nil {
		s.logger.Warn("failed to clear tracking bundle", slog.Any("error", err))
	}

	var bundle service.PurchaseBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		s.logger.Warn("discarding unreadable tracking bundle", slog.Any("error", err))

		return nil, false
	}

	return &bundle, true
}
