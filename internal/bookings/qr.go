package bookings

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// RenderQRCode encodes a booking reference as a PNG image of the given pixel
// size.
func RenderQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
