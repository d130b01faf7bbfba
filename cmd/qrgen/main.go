// qrgen writes the QR codes for all 13 tables into static/qr_codes.
// Print them once and tape them to the tables.
package main

import (
	"flag"
	"log"

	"github.com/TheRipper284/mh/internal/config"
	"github.com/TheRipper284/mh/internal/qr"
)

func main() {
	cfg := config.Load()
	baseURL := flag.String("base-url", cfg.BaseURL, "public URL the codes point at")
	outDir := flag.String("out", "./static/qr_codes", "output directory")
	flag.Parse()

	files, err := qr.GenerateTableCodes(*baseURL, *outDir)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range files {
		log.Printf("[qrgen] wrote %s", f)
	}
}
