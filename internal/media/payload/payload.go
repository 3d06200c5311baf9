// Package payload decodes base64 image uploads.
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"plantdefender/internal/media/sniffer"
)

var (
	ErrEmpty           = errors.New("image is empty")
	ErrInvalidEncoding = errors.New("image is not valid base64")
)

type Image struct {
	// Base64 is the payload without any data-URL prefix.
	Base64 string
	Data   []byte
	Media  sniffer.Result
}

// Decode accepts standard base64, optionally behind a
// "data:<mime>;base64," prefix, and requires a recognised image format.
func Decode(encoded string) (Image, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
			encoded = encoded[idx+len(";base64,"):]
		}
	}
	if encoded == "" {
		return Image{}, ErrEmpty
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some clients drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return Image{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
	}
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}

	media, err := sniffer.DetectHead(data)
	if err != nil {
		return Image{}, err
	}

	return Image{Base64: encoded, Data: data, Media: media}, nil
}
