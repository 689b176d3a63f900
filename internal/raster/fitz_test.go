package raster

import (
	"context"
	"path/filepath"
	"testing"

	"fjacquet/pdf2md/internal/pdftest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitz_Render(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "first", "second")

	img, err := NewFitz(72).Render(context.Background(), path, 1)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 612, img.Bounds().Dx())
	assert.Equal(t, 792, img.Bounds().Dy())
}

func TestFitz_PageOutOfRange(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "only")

	img, err := NewFitz(72).Render(context.Background(), path, 3)
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestFitz_Errors(t *testing.T) {
	_, err := NewFitz(72).Render(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fitz")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFitz(72).Render(ctx, "whatever.pdf", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
