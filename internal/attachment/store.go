package attachment

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/chatcore/internal/logger"
	"github.com/google/uuid"
)

// URLPrefix is where stored blobs are served.
const URLPrefix = "/api/files/"

// Исполняемые расширения не сохраняем как есть, файл получает .bin.
var blockedExt = map[string]bool{
	".exe": true, ".sh": true, ".js": true, ".bat": true, ".cmd": true,
	".php": true, ".py": true, ".rb": true,
}

// Store keeps blobs gzip-compressed under uuid names in a local directory.
// It implements service.BlobStore.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes r under a fresh name and returns the public URL of the blob.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	// В ряде клиентов/прокси пробел в имени кодируется как "+".
	ext := strings.ToLower(filepath.Ext(strings.ReplaceAll(filename, "+", " ")))
	if blockedExt[ext] || len(ext) > 10 {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("blobs: mkdir: %w", err)
	}

	dstPath := filepath.Join(s.dir, name+".gz")
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("blobs: create: %w", err)
	}
	gz := gzip.NewWriter(dst)
	if err := copyWithContext(ctx, gz, r); err != nil {
		gz.Close()
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("blobs: %w", err)
	}
	if err := gz.Close(); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("blobs: compress: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("blobs: close: %w", err)
	}
	return URLPrefix + name, nil
}

// Remove deletes the blob behind url. Missing blobs are not an error.
func (s *Store) Remove(_ context.Context, u string) error {
	name := path.Base(strings.TrimPrefix(u, URLPrefix))
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name+".gz"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("blobs: remove %s: %w", name, err)
	}
	return nil
}

// Serve отдаёт файл по имени (разархивирует при отдаче); query name= задаёт имя для Content-Disposition.
func (s *Store) Serve(w http.ResponseWriter, r *http.Request, filename string) {
	filename = filepath.Base(filename)
	f, err := os.Open(filepath.Join(s.dir, filename+".gz"))
	if err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		logger.Errorf("blobs: open %s: %v", filename, err)
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer gz.Close()

	if ct := contentTypeByExt(filepath.Ext(filename)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	if origName := r.URL.Query().Get("name"); origName != "" {
		origName = strings.TrimSpace(strings.ReplaceAll(origName, "+", " "))
		if safe := safeFilename(origName); safe != "" {
			disp := "attachment; filename*=UTF-8''" + url.PathEscape(safe)
			// legacy filename= only when it would not mangle the name
			if ascii := asciiFallbackFilename(safe); ascii == safe {
				disp = "attachment; filename=\"" + ascii + "\"; " + disp
			}
			w.Header().Set("Content-Disposition", disp)
		}
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, gz); err != nil {
		logger.Debugf("blobs: serve %s: %v", filename, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logger.Errorf("blobs writeError: %v", err)
	}
}

func contentTypeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".aac":
		return "audio/aac"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// safeFilename оставляет имя файла безопасным для Content-Disposition (без управляющих символов и кавычек).
// Поддерживается UTF-8, чтобы сохранять кириллицу и другие языки.
func safeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\r', '\n', '"', '\\', '/', '\x00':
			continue
		}
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// asciiFallbackFilename заменяет пробелы и не-ASCII на подчёркивание.
func asciiFallbackFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("upload cancelled: %w", err)
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read: %w", readErr)
		}
	}
}
