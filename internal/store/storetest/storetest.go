// Package storetest holds behaviour checks shared by every store.Store backend.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/homeboard/internal/store"
)

// Run exercises a fresh store returned by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("starts empty", func(t *testing.T) {
		st := newStore(t)
		snap, err := st.Snapshot(context.Background())
		require.NoError(t, err)
		for _, l := range store.Lists {
			assert.Empty(t, snap.Get(l), "list %s", l)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		want := make([]string, 0, 25)
		for i := range 25 {
			v := fmt.Sprintf("msg-%d", i)
			want = append(want, v)
			require.NoError(t, st.Append(ctx, store.ListMessages, v))
		}

		got, err := st.List(ctx, store.ListMessages)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("allows duplicates", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		require.NoError(t, st.Append(ctx, store.ListImages, "cat.png"))
		require.NoError(t, st.Append(ctx, store.ListImages, "cat.png"))

		got, err := st.List(ctx, store.ListImages)
		require.NoError(t, err)
		assert.Equal(t, []string{"cat.png", "cat.png"}, got)
	})

	t.Run("lists are independent", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		require.NoError(t, st.Append(ctx, store.ListShopping, "milk"))
		require.NoError(t, st.Append(ctx, store.ListTasks, "dishes"))

		snap, err := st.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"milk"}, snap.ShoppingItems)
		assert.Equal(t, []string{"dishes"}, snap.Tasks)
		assert.Empty(t, snap.Messages)
		assert.Empty(t, snap.Images)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		require.NoError(t, st.Append(ctx, store.ListTasks, "laundry"))
		snap, err := st.Snapshot(ctx)
		require.NoError(t, err)
		snap.Tasks[0] = "tampered"

		got, err := st.List(ctx, store.ListTasks)
		require.NoError(t, err)
		assert.Equal(t, []string{"laundry"}, got)
	})

	t.Run("empty string is an entry", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		require.NoError(t, st.Append(ctx, store.ListMessages, ""))
		got, err := st.List(ctx, store.ListMessages)
		require.NoError(t, err)
		assert.Equal(t, []string{""}, got)
	})

	t.Run("unknown list", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		err := st.Append(ctx, store.List("calendar"), "x")
		require.ErrorIs(t, err, store.ErrUnknownList)

		_, err = st.List(ctx, store.List("calendar"))
		require.ErrorIs(t, err, store.ErrUnknownList)
	})

	t.Run("concurrent appends are not lost", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		const writers, perWriter = 8, 50
		var wg sync.WaitGroup
		for w := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range perWriter {
					assert.NoError(t, st.Append(ctx, store.ListShopping, fmt.Sprintf("%d-%d", w, i)))
				}
			}()
		}
		wg.Wait()

		got, err := st.List(ctx, store.ListShopping)
		require.NoError(t, err)
		assert.Len(t, got, writers*perWriter)
	})
}
