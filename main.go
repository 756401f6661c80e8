package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"regfee/pkg/receiptocr"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)
	orch      *receiptocr.Orchestrator
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: loading .env: %v", err)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	orch = buildOrchestrator()

	// Support a lightweight migrate command: `./regfee migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	r := gin.Default()

	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	r.Run(":" + port)
}

// buildOrchestrator wires the suggestion pipeline from the environment. The
// remote fallback is only enabled when GEMINI_API_KEY is set.
func buildOrchestrator() *receiptocr.Orchestrator {
	var remote receiptocr.RemoteRecognizer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		remote = receiptocr.NewGeminiRecognizer(key, os.Getenv("GEMINI_MODEL"))
		log.Println("remote OCR fallback enabled")
	} else {
		log.Println("GEMINI_API_KEY not set; remote OCR fallback disabled")
	}
	o := receiptocr.NewOrchestrator(receiptocr.NewTesseractEngine(), remote)
	if v := os.Getenv("OCR_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 100 {
			o.SetThreshold(f)
		} else {
			log.Printf("warning: ignoring invalid OCR_CONFIDENCE_THRESHOLD %q", v)
		}
	}
	return o
}
