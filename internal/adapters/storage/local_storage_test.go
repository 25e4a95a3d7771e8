package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	n, err := s.Save(ctx, "projects/p1/brochure.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	rc, err := s.Open(ctx, "projects/p1/brochure.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(body))

	require.NoError(t, s.Delete(ctx, "projects/p1/brochure.pdf"))
	_, err = s.Open(ctx, "projects/p1/brochure.pdf")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// deleting twice is not an error
	assert.NoError(t, s.Delete(ctx, "projects/p1/brochure.pdf"))
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(ctx, "a.txt", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "a.txt", strings.NewReader("second"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(s.root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(raw))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../secret", "a/../../secret", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Save(ctx, key, strings.NewReader("x"))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
