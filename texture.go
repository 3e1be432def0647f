package corkboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDataURL is returned for data URLs that cannot be decoded.
var ErrDataURL = errors.New("corkboard: malformed data URL")

// TextureLoader turns an item source into a decoded image. A nil image with
// a nil error means the source has no still frame (videos).
type TextureLoader interface {
	Load(source string, kind ItemKind) (image.Image, error)
}

// TextureLoaderFunc adapts a function to TextureLoader.
type TextureLoaderFunc func(source string, kind ItemKind) (image.Image, error)

// Load calls f.
func (f TextureLoaderFunc) Load(source string, kind ItemKind) (image.Image, error) {
	return f(source, kind)
}

// FileLoader loads file paths, file:// URLs and data URLs. Videos are not
// decoded and get a placeholder poster.
type FileLoader struct{}

// Load implements TextureLoader.
func (FileLoader) Load(source string, kind ItemKind) (image.Image, error) {
	if kind == KindVideo {
		return nil, nil
	}
	if strings.HasPrefix(source, "data:") {
		data, err := DecodeDataURL(source)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode data URL image: %w", err)
		}
		return img, nil
	}
	path := strings.TrimPrefix(source, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// decodeFile decodes the named image inside fsys.
func decodeFile(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeDataURL returns the payload of an RFC 2397 data URL. Both base64 and
// percent-encoded payloads are accepted.
func DecodeDataURL(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrDataURL
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
		}
		return data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
	}
	return []byte(text), nil
}
