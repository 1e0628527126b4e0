package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"lszip/internal/analyze"
	"lszip/internal/archive"
	"lszip/internal/model"
)

//go:embed static/*
var staticFS embed.FS

// maxUploadBytes caps uploaded archives. Large-archive streaming is out of
// scope; the whole file lands on disk before analysis.
const maxUploadBytes = 512 << 20

// StartServer starts the web server on the given port (or default 8080).
func StartServer() {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/analyze", handleAnalyze)
	mux.HandleFunc("/api/version", handleVersion)

	port := "8080"
	fmt.Printf("Starting lszip web server at http://localhost:%s\n", port)
	fmt.Printf("Go to http://localhost:%s in your browser and drop an archive.\n", port)

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

// handleAnalyze accepts one uploaded archive (multipart field "archive"),
// analyzes it, and returns the {tree, summary} result. The upload is spooled
// to a temporary file because some decoders need random access.
func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	src, header, err := r.FormFile("archive")
	if err != nil {
		http.Error(w, "archive file is required", http.StatusBadRequest)
		return
	}
	defer src.Close()

	// keep the archive extension so format selection still works.
	tmp, err := os.CreateTemp("", "lszip-*"+archive.Ext(header.Filename))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	res, err := analyze.Run(r.Context(), tmp.Name())
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, archive.ErrUnsupported) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("cannot read archive: %v", err), status)
		return
	}
	res.ArchiveName = filepath.Base(header.Filename)

	response := struct {
		model.Result
		Report  string `json:"report"`
		Version string `json:"version"`
	}{
		Result:  res,
		Report:  analyze.GenerateReport(res, true),
		Version: model.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": model.Version})
}
