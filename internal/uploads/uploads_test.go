package uploads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	cases := map[string]bool{
		"photo.png":      true,
		"photo.PNG":      true,
		"a.b.JpEg":       true,
		"anim.gif":       true,
		"shot.jpg":       true,
		"virus.exe":      false,
		"png":            false,
		"noextension":    false,
		"trailingdot.":   false,
		"photo.png.exe":  false,
		".gif":           true,
		"archive.tar.gz": false,
	}
	for name, want := range cases {
		assert.Equal(t, want, Allowed(name), "filename %q", name)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "static", "uploads")

	d, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, d.Root())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFailsWhenPathIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := New(filepath.Join(blocker, "uploads"))
	require.Error(t, err)
}

func TestPathRefusesEscapes(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "../x.png", "a/b.png"} {
		_, ok := d.Path(name)
		assert.False(t, ok, "name %q", name)
	}

	p, ok := d.Path("cat.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(d.Root(), "cat.png"), p)
}

func TestPathKeepsOtherNamesVerbatim(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("backslash is a separator on this platform")
	}
	d, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{`a\b.png`, "..png", "my photo.GIF", "x..y.jpg"} {
		p, ok := d.Path(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, filepath.Join(d.Root(), name), p)
	}
}

func TestOpen(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = d.Open("missing.png")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Mkdir(filepath.Join(d.Root(), "sub.png"), 0o755))
	_, _, err = d.Open("sub.png")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "cat.png"), []byte("meow"), 0o600))
	f, info, err := d.Open("cat.png")
	require.NoError(t, err)
	defer f.Close()
	assert.EqualValues(t, 4, info.Size())
}
