package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// maxDownloadSize caps a single image download.
	maxDownloadSize = 20 << 20
	// maxPixels caps the decoded size; a small file can declare huge dimensions.
	maxPixels = 40_000_000
)

type Converter struct {
	httpClient *http.Client
	userAgent  string
	dir        string
}

// NewConverter creates a converter writing its files into dir.
func NewConverter(httpClient *http.Client, userAgent, dir string) *Converter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Converter{
		httpClient: httpClient,
		userAgent:  userAgent,
		dir:        dir,
	}
}

// Convert downloads url, names the download after its sniffed type, scales
// it down to bound when needed and writes it as PNG. The download itself is
// removed once the PNG exists.
func (c *Converter) Convert(ctx context.Context, url string, bound Bound) (*Asset, error) {
	downloaded, err := c.download(ctx, url)
	if err != nil {
		return nil, &Error{URL: url, Stage: StageDownload, Err: err}
	}

	named, subtype, err := c.addSuffix(downloaded)
	if err != nil {
		os.Remove(downloaded)
		return nil, &Error{URL: url, Stage: StageDetect, Err: err}
	}
	defer os.Remove(named)

	img, err := decode(named)
	if err != nil {
		return nil, &Error{URL: url, Stage: StageDecode, Err: err}
	}

	bounds := img.Bounds()
	if bound.Exceeds(bounds.Dx(), bounds.Dy()) {
		img = Scale(img, bound)
	}

	pngPath := named + ".png"
	if err := encode(pngPath, img); err != nil {
		os.Remove(pngPath)
		return nil, &Error{URL: url, Stage: StageEncode, Err: err}
	}

	log.WithFields(log.Fields{
		"url":    url,
		"type":   subtype,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
		"path":   pngPath,
	}).Debug("Media converted")

	return &Asset{Path: pngPath, MIME: subtype, Bound: bound}, nil
}

func (c *Converter) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	f, err := os.CreateTemp(c.dir, "media-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(resp.Body, maxDownloadSize))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n == 0 {
		err = errors.New("empty response body")
	}
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	return f.Name(), nil
}

// addSuffix sniffs the file's content and renames it to carry the matching
// extension. The URL is never consulted.
func (c *Converter) addSuffix(path string) (string, string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to detect type: %w", err)
	}

	major, subtype, ok := strings.Cut(mtype.String(), "/")
	if !ok || major != "image" || mtype.Extension() == "" {
		return "", "", fmt.Errorf("unsupported media type %s", mtype.String())
	}

	named := path + mtype.Extension()
	if err := os.Rename(path, named); err != nil {
		return "", "", fmt.Errorf("failed to rename download: %w", err)
	}

	return named, subtype, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if int64(config.Width)*int64(config.Height) > maxPixels {
		return nil, fmt.Errorf("image too large: %dx%d", config.Width, config.Height)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// Scale resizes img to fit within bound, keeping its aspect ratio.
func Scale(img image.Image, bound Bound) image.Image {
	src := img.Bounds()
	width, height := bound.Fit(src.Dx(), src.Dy())

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
