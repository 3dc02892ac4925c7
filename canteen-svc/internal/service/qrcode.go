package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ReceiptQR encodes a link to a customer's numbered order as a PNG.
type ReceiptQR struct {
	BaseURL string
}

func (g ReceiptQR) Generate(loginID string, number int) ([]byte, error) {
	base := strings.TrimRight(g.BaseURL, "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	qrData := fmt.Sprintf("%s/api/orders/%d?customer=%s", base, number, url.QueryEscape(loginID))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = ReceiptQR{}
