package clipboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/clipboard"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	m := clipboard.NewMemory()
	_, ok := m.Read()
	assert.False(t, ok)

	data := []byte("<p>hi</p>")
	require.NoError(t, m.Write(context.Background(), clipboard.TypeHTML, data))
	data[0] = 'x'

	e, ok := m.Read()
	require.True(t, ok)
	assert.Equal(t, clipboard.TypeHTML, e.ContentType)
	assert.Equal(t, "<p>hi</p>", string(e.Data))

	require.NoError(t, m.Write(context.Background(), clipboard.TypePNG, []byte{1, 2}))
	e, _ = m.Read()
	assert.Equal(t, clipboard.TypePNG, e.ContentType)
	assert.Len(t, m.History(), 2)
}

func TestMemory_Deny(t *testing.T) {
	t.Parallel()

	m := clipboard.NewMemory()
	m.Deny(errors.New("permission denied"))
	err := m.Write(context.Background(), clipboard.TypeText, []byte("x"))
	assert.ErrorIs(t, err, clipboard.ErrDenied)
	_, ok := m.Read()
	assert.False(t, ok)

	m.Deny(nil)
	assert.NoError(t, m.Write(context.Background(), clipboard.TypeText, []byte("x")))
}

func TestMemory_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, clipboard.NewMemory().Write(ctx, clipboard.TypeText, nil), context.Canceled)
}

func TestSystem_UnsupportedType(t *testing.T) {
	t.Parallel()

	err := clipboard.NewSystem().Write(context.Background(), "application/pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, clipboard.ErrUnsupportedType)
}
