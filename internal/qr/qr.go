// Package qr renders ticket validation codes as QR images. The code is
// the only payload; scanning feeds it back through the validate
// endpoint.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// TicketPNG encodes a validation code as a PNG. Size is clamped to a
// sane range so the endpoint cannot be asked for absurd bitmaps.
func TicketPNG(code string, size int) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("empty validation code")
	}

	if size <= 0 {
		size = DefaultSize
	}
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	return png, nil
}
