//go:build linux || freebsd || openbsd || netbsd || dragonfly

// Package clipboard moves drawings and text between the application and the
// system clipboard. Two backends exist: a cgo binding and a pure-Go X11
// fallback, selected at build time.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

// provider is the platform backend behind the package API. Exactly one
// implementation is compiled in, selected by the cgo build tag.
type provider interface {
	writeText(data []byte) error
	readText() ([]byte, error)
	writeImage(pngData []byte) error
	readImage() ([]byte, error)
}

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	backend      provider
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		backend, initErr = newProvider()
	})
	return initErr
}

// WriteImage encodes the image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return backend.writeImage(buf.Bytes())
}

// ReadImage retrieves PNG data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := backend.readImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.writeText([]byte(text))
}

// ReadText returns UTF-8 text from the clipboard.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := backend.readText()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	// Some clients append a trailing NUL to STRING data.
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data), nil
}
