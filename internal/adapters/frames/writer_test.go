package frames

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEvent() domain.Event {
	return domain.Event{
		Frame: &domain.Image{
			Width:  2,
			Height: 1,
			Pix:    []uint8{10, 20, 30, 40, 50, 60},
		},
		InstanceSegmentationFrame: &domain.Image{
			Width:  2,
			Height: 1,
			Pix:    []uint8{10, 20, 30, 40, 50, 60},
		},
		ClassSegmentationFrame: &domain.Image{
			Width:  2,
			Height: 1,
			Pix:    []uint8{1, 2, 3, 4, 5, 6},
		},
		DepthFrame: &domain.Depth{
			Width:  2,
			Height: 2,
			Values: []float64{0, 1, 2, 4},
		},
	}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPersistWithNoChannelsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := &strings.Builder{}

	w, err := NewWriter(dir, false, Channels{}, out)
	require.NoError(t, err)

	require.NoError(t, w.Persist(fullEvent(), 0))

	assert.Empty(t, listFiles(t, dir))
	assert.Empty(t, out.String())
}

func TestPersistColorSwapsBlueAndRed(t *testing.T) {
	dir := t.TempDir()
	out := &strings.Builder{}

	w, err := NewWriter(dir, false, Channels{Color: true}, out)
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 0))

	file, err := os.Open(filepath.Join(dir, "color.png"))
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(20), g>>8)
	assert.Equal(t, uint32(10), b>>8)

	assert.Contains(t, out.String(), "Image "+filepath.Join(dir, "color.png"))
}

func TestPersistSegmentationPassesThrough(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, false, Channels{InstanceSegmentation: true, ClassSegmentation: true}, &strings.Builder{})
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 0))

	file, err := os.Open(filepath.Join(dir, "instance_segmentation.png"))
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(10), r>>8)
	assert.Equal(t, uint32(20), g>>8)
	assert.Equal(t, uint32(30), b>>8)

	assert.FileExists(t, filepath.Join(dir, "class_segmentation.png"))
}

func TestPersistDepthNormalizesToEightBit(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, false, Channels{Depth: true}, &strings.Builder{})
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 0))

	file, err := os.Open(filepath.Join(dir, "depth.png"))
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)

	// Values 0,1,2,4 scaled by 255/max shifted to the minimum.
	wantGray := []uint32{0, 63, 127, 255}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			assert.Equal(t, wantGray[i], r>>8, "pixel (%d,%d)", x, y)
			i++
		}
	}
}

func TestPersistDepthRawStripsImageSuffix(t *testing.T) {
	dir := t.TempDir()
	out := &strings.Builder{}

	w, err := NewWriter(dir, false, Channels{DepthRaw: true}, out)
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 0))

	files := listFiles(t, dir)
	assert.Equal(t, []string{"depth_raw.npy"}, files)
}

func TestPersistPerFrameSuffixesFilenames(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, true, Channels{Color: true, DepthRaw: true}, &strings.Builder{})
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 3))
	require.NoError(t, w.Persist(fullEvent(), 4))

	assert.FileExists(t, filepath.Join(dir, "color3.png"))
	assert.FileExists(t, filepath.Join(dir, "color4.png"))
	assert.FileExists(t, filepath.Join(dir, "depth_raw3.npy"))
	assert.FileExists(t, filepath.Join(dir, "depth_raw4.npy"))
}

func TestPersistOverwritesWithoutPerFrame(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, false, Channels{Color: true}, &strings.Builder{})
	require.NoError(t, err)
	require.NoError(t, w.Persist(fullEvent(), 0))
	require.NoError(t, w.Persist(fullEvent(), 1))

	assert.Equal(t, []string{"color.png"}, listFiles(t, dir))
}

func TestPersistMissingFrameIsDiagnosticNotError(t *testing.T) {
	dir := t.TempDir()
	out := &strings.Builder{}

	w, err := NewWriter(dir, false, Channels{Color: true, Depth: true}, out)
	require.NoError(t, err)

	require.NoError(t, w.Persist(domain.Event{}, 0))

	assert.Empty(t, listFiles(t, dir))
	assert.Equal(t, 2, strings.Count(out.String(), "No frame present, call initialize with the right parameters"))
}

func TestNewWriterCreatesDirectoryWhenNeeded(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")

	_, err := NewWriter(dir, false, Channels{Color: true}, &strings.Builder{})
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
