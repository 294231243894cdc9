package rver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverMakeLoad(t *testing.T) {
	r, err := New(filepath.Join(t.TempDir(), "test.recover"))
	require.NoError(t, err)

	flag, payload, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, flag)
	assert.Equal(t, "", payload)

	require.NoError(t, r.Make(2, "abc"))
	flag, payload, err = r.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, flag)
	assert.Equal(t, "abc", payload)

	// A shorter rewrite must not leave stale payload bytes behind.
	require.NoError(t, r.Make(4, ""))
	flag, payload, err = r.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, flag)
	assert.Equal(t, "", payload)
}
