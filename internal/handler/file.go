package handler

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

type FileHandler struct {
	files Files
}

func NewFileHandler(files Files) *FileHandler {
	return &FileHandler{files: files}
}

// Serve отдаёт сохранённый файл; ?name= задаёт имя для скачивания.
func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(chi.URLParam(r, "filename"))
	if filename == "." || filename == "/" {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	h.files.Serve(w, r, filename)
}
