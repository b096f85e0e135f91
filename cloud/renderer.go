// Package cloud lays out word frequencies as a rasterized word cloud.
package cloud

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand/v2"
	"strings"

	"doccloud/text"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/opentype"
)

var (
	// ErrEmptyText means there was nothing to render. Callers surface it as a warning.
	ErrEmptyText = errors.New("text is empty")
	// ErrNoWords means every token was filtered out, e.g. the text held only stopwords.
	ErrNoWords = errors.New("no words left to plot after removing stopwords")
)

// IsWarning reports whether err is a user-correctable condition rather than a failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNoWords)
}

// RenderError represents a layout or rasterization failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Image is a finished word cloud.
type Image struct {
	Image         image.Image
	Words         []PlacedWord
	CanvasWidth   int
	CanvasHeight  int
	DistinctWords int
}

type Renderer struct {
	options Options
	counter *text.Counter
	font    *opentype.Font
	logger  *zap.Logger
}

func NewRenderer(options Options, counter *text.Counter, logger *zap.Logger) (*Renderer, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render options: %w", err)
	}

	f, err := loadFont(options.FontPath)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		options: options,
		counter: counter,
		font:    f,
		logger:  logger,
	}, nil
}

// Render counts the words of s and draws them. Blank text yields ErrEmptyText
// and text without countable words yields ErrNoWords.
func (r *Renderer) Render(s string) (*Image, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyText
	}

	words := r.counter.Count(s)
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	seed := r.options.Seed
	if seed == 0 {
		seed = textSeed(s)
	}
	return r.generate(words, seed)
}

// generate draws precomputed frequencies, most frequent first.
func (r *Renderer) generate(words []text.WordCount, seed int64) (*Image, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	distinct := len(words)
	if len(words) > r.options.MaxWords {
		words = words[:r.options.MaxWords]
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	faces := newFaceCache(r.font)
	defer faces.Close()

	fontSize, err := r.startingFontSize(words, rng, faces)
	if err != nil {
		return nil, err
	}

	canvas, placed, err := r.layout(words, rng, faces, fontSize)
	if err != nil {
		return nil, &RenderError{Message: "layout failed", Cause: err}
	}
	if len(placed) == 0 {
		return nil, &RenderError{Message: "couldn't find space to draw; the canvas may be too small"}
	}

	r.logger.Info("word_cloud_rendered",
		zap.Int("distinct_words", distinct),
		zap.Int("placed_words", len(placed)),
		zap.Int("start_font_size", fontSize),
		zap.Int64("seed", seed))

	return &Image{
		Image:         r.output(canvas),
		Words:         placed,
		CanvasWidth:   r.options.Width,
		CanvasHeight:  r.options.Height,
		DistinctWords: distinct,
	}, nil
}

// startingFontSize uses MaxFontSize when set. Otherwise it lays out the two most
// frequent words alone on a canvas-high start and takes the harmonic mean of their sizes.
func (r *Renderer) startingFontSize(words []text.WordCount, rng *rand.Rand, faces *faceCache) (int, error) {
	if r.options.MaxFontSize > 0 {
		return r.options.MaxFontSize, nil
	}
	if len(words) == 1 {
		return r.options.Height, nil
	}

	_, trial, err := r.layout(words[:2], rng, faces, r.options.Height)
	if err != nil {
		return 0, &RenderError{Message: "layout failed", Cause: err}
	}
	switch len(trial) {
	case 0:
		return 0, &RenderError{Message: "couldn't find space to draw; the canvas may be too small"}
	case 1:
		return trial[0].FontSize, nil
	}
	s0, s1 := float64(trial[0].FontSize), float64(trial[1].FontSize)
	return int(2 * s0 * s1 / (s0 + s1)), nil
}

// output resamples the canvas bilinearly when Scale is not 1.
func (r *Renderer) output(canvas *image.RGBA) image.Image {
	if r.options.Scale == 1 {
		return canvas
	}
	w := max(1, int(math.Round(float64(r.options.Width)*r.options.Scale)))
	h := max(1, int(math.Round(float64(r.options.Height)*r.options.Scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst
}

func textSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, s)
	return int64(h.Sum64())
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
