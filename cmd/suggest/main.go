package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"regfee/pkg/receiptocr"

	"github.com/joho/godotenv"
)

// suggest runs the receipt suggestion pipeline against image files and prints
// the resulting suggestion JSON, one object per file.
func main() {
	forceRemote := flag.Bool("force-remote", false, "always use the remote recognizer")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("usage: go run ./cmd/suggest [-force-remote] <image> [image...]")
		os.Exit(2)
	}
	_ = godotenv.Load()

	var remote receiptocr.RemoteRecognizer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		remote = receiptocr.NewGeminiRecognizer(key, os.Getenv("GEMINI_MODEL"))
	} else if *forceRemote {
		log.Fatal("-force-remote requires GEMINI_API_KEY")
	}
	orch := receiptocr.NewOrchestrator(receiptocr.NewTesseractEngine(), remote)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, arg := range flag.Args() {
		p, _ := filepath.Abs(arg)
		data, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("read %s: %v", p, err)
		}
		fmt.Printf("== %s\n", p)
		sug := orch.Suggest(context.Background(), receiptocr.ImageBytes(data), *forceRemote)
		if err := enc.Encode(sug); err != nil {
			log.Fatalf("encode suggestion: %v", err)
		}
	}
}
