//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import "golang.design/x/clipboard"

type cgoProvider struct{}

func newProvider() (provider, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return cgoProvider{}, nil
}

func (cgoProvider) writeText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (cgoProvider) readText() ([]byte, error) {
	return clipboard.Read(clipboard.FmtText), nil
}

func (cgoProvider) writeImage(pngData []byte) error {
	clipboard.Write(clipboard.FmtImage, pngData)
	return nil
}

func (cgoProvider) readImage() ([]byte, error) {
	return clipboard.Read(clipboard.FmtImage), nil
}
