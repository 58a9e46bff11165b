// handlers.go
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"clickcount/clicks"

	"github.com/google/uuid"
)

var errNoFile = errors.New("no file selected")

func newMux(cfg Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", uploadHandler(cfg))
	mux.HandleFunc("/count", countHandler(cfg))
	mux.HandleFunc("/api/count", apiCountHandler(cfg))
	mux.HandleFunc("/health", healthHandler)
	return mux
}

func uploadHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		renderPage(w, http.StatusOK, CountPage{MaxSize: cfg.MaxUploadBytes})
	}
}

func countHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		page, err := countUpload(w, r, cfg.MaxUploadBytes)
		page.MaxSize = cfg.MaxUploadBytes
		switch {
		case errors.Is(err, errNoFile):
			renderPage(w, http.StatusOK, page)
		case err != nil:
			log.Printf("Upload %s failed: %v", page.UploadID, err)
			page.Error = err.Error()
			renderPage(w, http.StatusBadRequest, page)
		default:
			renderPage(w, http.StatusOK, page)
		}
	}
}

// countUpload reads the multipart "file" field and tallies it. The returned
// page carries the upload ID even when err is non-nil.
func countUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (CountPage, error) {
	page := CountPage{UploadID: uuid.NewString()}

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(1<<20))
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return page, fmt.Errorf("file too large (max %d bytes)", maxSize)
		}
		return page, fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return page, errNoFile
		}
		return page, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	page.FileName = header.Filename
	page.FileSize = header.Size
	if header.Size > maxSize {
		return page, fmt.Errorf("file too large (max %d bytes)", maxSize)
	}

	var data Sheet
	switch {
	case isCSV(header.Filename):
		data, err = processCSV(file)
		if err != nil {
			return page, fmt.Errorf("csv error: %w", err)
		}
	case isExcel(header.Filename):
		data, err = processExcel(file)
		if err != nil {
			return page, fmt.Errorf("excel error: %w", err)
		}
	default:
		return page, fmt.Errorf("%w: %s", ErrUnsupportedFile, header.Filename)
	}

	tally := clicks.Count(data.Records(), nil)
	page.Tally = &tally
	log.Printf("Upload %s: %s (%d bytes) total=%d gte10=%d gt10=%d",
		page.UploadID, page.FileName, page.FileSize, tally.TotalRows, tally.CountGTE10, tally.CountGT10)
	return page, nil
}

func renderPage(w http.ResponseWriter, status int, page CountPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := uploadTemplate.Execute(w, page); err != nil {
		log.Printf("Template error: %v", err)
	}
}
