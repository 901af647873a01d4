package testsupport

import (
	"testing"

	"sideline/internal/config"
	"sideline/internal/queue"
)

// MustOpenStore opens a run ledger for the given config, failing the test on
// error and closing the store during cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open run store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close run store: %v", err)
		}
	})
	return store
}
