package memory

import (
	"testing"

	"github.com/vovakirdan/homeboard/internal/store"
	"github.com/vovakirdan/homeboard/internal/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st := New()
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}
