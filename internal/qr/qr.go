package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/TheRipper284/mh/internal/domain"
)

// GenerateTableCodes writes one QR PNG per table into dir, each encoding
// baseURL/mesa/N. Returns the written file paths.
func GenerateTableCodes(baseURL, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var files []string
	for mesa := domain.MinTable; mesa <= domain.MaxTable; mesa++ {
		url := fmt.Sprintf("%s/mesa/%d", baseURL, mesa)
		file := filepath.Join(dir, fmt.Sprintf("mesa_%d.png", mesa))
		if err := qrcode.WriteFile(url, qrcode.Medium, 256, file); err != nil {
			return files, fmt.Errorf("mesa %d: %w", mesa, err)
		}
		files = append(files, file)
	}
	return files, nil
}
