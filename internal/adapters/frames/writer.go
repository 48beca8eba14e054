// Package frames persists per-step sensor frames to disk.
package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/avasek/sim-interact-cli/internal/ports"
)

const (
	imageDirMode  = 0o700
	imageFileMode = 0o600
)

// Channels selects which sensor channels are written each step.
type Channels struct {
	Color                bool
	InstanceSegmentation bool
	ClassSegmentation    bool
	Depth                bool
	DepthRaw             bool
}

// Any reports whether at least one channel is enabled.
func (c Channels) Any() bool {
	return c.Color || c.InstanceSegmentation || c.ClassSegmentation || c.Depth || c.DepthRaw
}

// Writer saves enabled channels under a directory, either one file
// per step or overwriting the same file every step. Writes are not
// transactional; a failure partway through leaves earlier channels on
// disk.
type Writer struct {
	dir      string
	perFrame bool
	channels Channels
	out      io.Writer
}

var _ ports.FrameSink = (*Writer)(nil)

func NewWriter(dir string, perFrame bool, channels Channels, out io.Writer) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if out == nil {
		out = os.Stdout
	}
	if channels.Any() {
		if err := os.MkdirAll(dir, imageDirMode); err != nil {
			return nil, fmt.Errorf("create image directory: %w", err)
		}
	}

	return &Writer{dir: dir, perFrame: perFrame, channels: channels, out: out}, nil
}

type channelWrite struct {
	name    string
	enabled bool
	// persist is nil when the frame is absent from the event.
	persist func(path string) error
}

// Persist writes the event's frames for one step, in fixed channel
// order. A missing frame on an enabled channel is a diagnostic, not
// an error.
func (w *Writer) Persist(event domain.Event, step int) error {
	suffix := ""
	if w.perFrame {
		suffix = strconv.Itoa(step)
	}

	writes := []channelWrite{
		{"color", w.channels.Color, imageWrite(event.Frame, true)},
		{"instance_segmentation", w.channels.InstanceSegmentation, imageWrite(event.InstanceSegmentationFrame, false)},
		{"class_segmentation", w.channels.ClassSegmentation, imageWrite(event.ClassSegmentationFrame, false)},
		{"depth", w.channels.Depth, depthImageWrite(event.DepthFrame)},
		{"depth_raw", w.channels.DepthRaw, depthRawWrite(event.DepthFrame)},
	}

	for _, cw := range writes {
		if !cw.enabled {
			continue
		}
		if cw.persist == nil {
			fmt.Fprintln(w.out, "No frame present, call initialize with the right parameters")
			continue
		}
		path := filepath.Join(w.dir, cw.name+suffix+".png")
		fmt.Fprintf(w.out, "Image %s\n", path)
		if err := cw.persist(path); err != nil {
			return fmt.Errorf("write %s frame: %w", cw.name, err)
		}
	}

	return nil
}

// imageWrite persists an 8-bit three-channel frame as PNG. The color
// channel arrives in BGR order and is swapped to RGB; segmentation
// frames pass through as-is.
func imageWrite(frame *domain.Image, swapBR bool) func(string) error {
	if frame == nil {
		return nil
	}
	return func(path string) error {
		img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
		for y := 0; y < frame.Height; y++ {
			for x := 0; x < frame.Width; x++ {
				i := (y*frame.Width + x) * 3
				r, g, b := frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2]
				if swapBR {
					r, b = b, r
				}
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xff})
			}
		}
		return encodePNG(path, img)
	}
}

// depthImageWrite persists the depth frame as an 8-bit grayscale PNG,
// scaled by 255/max over values shifted to the frame minimum.
func depthImageWrite(frame *domain.Depth) func(string) error {
	if frame == nil {
		return nil
	}
	return func(path string) error {
		min, max := depthRange(frame.Values)

		scale := 0.0
		if max > 0 {
			scale = 255.0 / max
		}

		img := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
		for i, v := range frame.Values {
			scaled := (v - min) * scale
			if scaled < 0 {
				scaled = 0
			}
			if scaled > 255 {
				scaled = 255
			}
			img.Pix[i] = uint8(scaled)
		}
		return encodePNG(path, img)
	}
}

// depthRawWrite persists the depth frame unmodified as float32, to
// the image path with the .png suffix stripped.
func depthRawWrite(frame *domain.Depth) func(string) error {
	if frame == nil {
		return nil
	}
	return func(path string) error {
		base := strings.TrimSuffix(path, ".png")
		return writeNPY(base+".npy", frame.Height, frame.Width, frame.Values)
	}
}

func depthRange(values []float64) (min, max float64) {
	for i, v := range values {
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}

func encodePNG(path string, img image.Image) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, imageFileMode)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
