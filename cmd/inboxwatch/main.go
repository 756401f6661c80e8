package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"regfee/pkg/receiptocr"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
)

// inboxwatch watches a directory for newly dropped receipt images and runs the
// suggestion pipeline on each, writing the suggestion JSON next to the image.
// Useful for bulk-processing receipts forwarded by email.
func main() {
	dir := flag.String("dir", "inbox", "directory to watch for receipt images")
	flag.Parse()
	_ = godotenv.Load()

	var remote receiptocr.RemoteRecognizer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		remote = receiptocr.NewGeminiRecognizer(key, os.Getenv("GEMINI_MODEL"))
	}
	orch := receiptocr.NewOrchestrator(receiptocr.NewTesseractEngine(), remote)

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatalf("create inbox dir: %v", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("create watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(*dir); err != nil {
		log.Fatalf("watch %s: %v", *dir, err)
	}
	log.Printf("watching %s for receipt images", *dir)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isImagePath(ev.Name) {
				continue
			}
			// Writers may still be flushing; give the file a moment to settle.
			time.Sleep(200 * time.Millisecond)
			processImage(orch, ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func isImagePath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func processImage(orch *receiptocr.Orchestrator, path string) {
	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".suggestion.json"
	if _, err := os.Stat(outPath); err == nil {
		return // already processed
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("read %s: %v", path, err)
		return
	}
	sug := orch.Suggest(context.Background(), receiptocr.ImageBytes(data), false)
	out, err := json.MarshalIndent(sug, "", "  ")
	if err != nil {
		log.Printf("encode suggestion for %s: %v", path, err)
		return
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		log.Printf("write %s: %v", outPath, err)
		return
	}
	log.Printf("processed %s source=%s manual=%v", filepath.Base(path), sug.Source, sug.ShouldManual)
}
