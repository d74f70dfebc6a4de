// Package attachment validates uploaded media and stores blobs on disk.
package attachment

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/chatcore/internal/config"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/service"
	_ "golang.org/x/image/webp"
)

// Разрешённые MIME по виду вложения.
var allowedMime = map[model.MediaKind]map[string]bool{
	model.MediaKindImage: {
		"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true,
	},
	model.MediaKindVideo: {
		"video/mp4": true, "video/webm": true, "video/quicktime": true,
	},
	model.MediaKindVoice: {
		"audio/ogg": true, "audio/webm": true, "audio/mpeg": true, "audio/wav": true,
		"audio/aac": true, "audio/mp4": true,
	},
	model.MediaKindFile: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/vnd.ms-excel": true,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
		"text/plain":               true,
		"application/octet-stream": true,
	},
}

// Браузеры и клиенты присылают разные имена для одного формата.
var mimeAliases = map[string]string{
	"image/jpg":       "image/jpeg",
	"image/pjpeg":     "image/jpeg",
	"audio/x-wav":     "audio/wav",
	"audio/wave":      "audio/wav",
	"audio/vnd.wave":  "audio/wav",
	"audio/x-aac":     "audio/aac",
	"audio/mp3":       "audio/mpeg",
	"audio/x-m4a":     "audio/mp4",
	"audio/opus":      "audio/ogg",
	"application/ogg": "audio/ogg",
}

const sniffLen = 512

// defaultMaxPixels: потолок width*height, если в лимитах не задан свой.
const defaultMaxPixels = 89_478_485

// Processor implements service.MediaProcessor.
type Processor struct {
	limits config.AttachmentLimits
}

func NewProcessor(limits config.AttachmentLimits) *Processor {
	return &Processor{limits: limits}
}

func invalid(format string, args ...any) error {
	return &service.Error{Kind: service.ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func (p *Processor) limit(kind model.MediaKind) int64 {
	switch kind {
	case model.MediaKindImage:
		return p.limits.Image
	case model.MediaKindVideo:
		return p.limits.Video
	case model.MediaKindVoice:
		return p.limits.Voice
	case model.MediaKindFile:
		return p.limits.File
	}
	return 0
}

func (p *Processor) maxPixels() int64 {
	if p.limits.MaxPixels > 0 {
		return p.limits.MaxPixels
	}
	return defaultMaxPixels
}

// Process checks declared type, size and content of up against kind. Images are fully
// decoded and get a JPEG thumbnail. The reader position is left undefined.
func (p *Processor) Process(up service.Upload, kind model.MediaKind) (*service.ProcessedMedia, error) {
	allowed, ok := allowedMime[kind]
	if !ok {
		return nil, invalid("unsupported media kind %q", kind)
	}
	if up.Content == nil || up.Size <= 0 {
		return nil, invalid("%s is empty", displayName(up.Filename))
	}
	if ceiling := p.limit(kind); ceiling > 0 && up.Size > ceiling {
		return nil, invalid("%s exceeds the %d MB limit for %s", displayName(up.Filename), ceiling>>20, kind)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", up.Filename, err)
	}
	head = head[:n]

	mt := normalizeMime(up.ContentType)
	if mt == "" || (mt == "application/octet-stream" && kind != model.MediaKindFile) {
		mt = normalizeMime(http.DetectContentType(head))
	}
	if !allowed[mt] {
		return nil, invalid("%s: type %s is not allowed for %s", displayName(up.Filename), mt, kind)
	}
	if !matchMagic(mt, head) {
		return nil, invalid("%s: file content does not match type %s", displayName(up.Filename), mt)
	}

	out := &service.ProcessedMedia{Kind: kind, MimeType: mt}
	if kind != model.MediaKindImage {
		return out, nil
	}

	if _, err := up.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", up.Filename, err)
	}
	// размеры из заголовка: сжатый файл может объявить картинку на гигабайты пикселей
	cfg, _, err := image.DecodeConfig(up.Content)
	if err != nil {
		return nil, invalid("%s is not a valid image", displayName(up.Filename))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > p.maxPixels() {
		return nil, invalid("%s: image dimensions %dx%d exceed the %d pixel limit",
			displayName(up.Filename), cfg.Width, cfg.Height, p.maxPixels())
	}
	if _, err := up.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", up.Filename, err)
	}
	img, _, err := image.Decode(up.Content)
	if err != nil {
		return nil, invalid("%s is not a valid image", displayName(up.Filename))
	}
	if out.Thumbnail, err = thumbnail(img); err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", up.Filename, err)
	}
	return out, nil
}

func normalizeMime(s string) string {
	if s == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		mt = strings.TrimSpace(strings.SplitN(s, ";", 2)[0])
	}
	mt = strings.ToLower(mt)
	if alias, ok := mimeAliases[mt]; ok {
		return alias
	}
	return mt
}

// matchMagic сверяет сигнатуру файла с заявленным типом. Форматы без сигнатуры проходят.
func matchMagic(mt string, head []byte) bool {
	switch mt {
	case "image/jpeg":
		return len(head) >= 3 && head[0] == 0xFF && head[1] == 0xD8 && head[2] == 0xFF
	case "image/png":
		return len(head) >= 8 && bytes.Equal(head[:8], []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	case "image/gif":
		return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
	case "image/webp":
		return riff(head, "WEBP")
	case "audio/wav":
		return riff(head, "WAVE")
	case "video/mp4", "video/quicktime", "audio/mp4":
		return len(head) >= 8 && bytes.Equal(head[4:8], []byte("ftyp"))
	case "video/webm", "audio/webm":
		return len(head) >= 4 && bytes.Equal(head[:4], []byte{0x1A, 0x45, 0xDF, 0xA3})
	case "audio/ogg":
		return len(head) >= 4 && bytes.Equal(head[:4], []byte("OggS"))
	case "audio/mpeg":
		return len(head) >= 3 && (bytes.Equal(head[:3], []byte("ID3")) || (head[0] == 0xFF && head[1]&0xE0 == 0xE0))
	case "audio/aac":
		return len(head) >= 2 && head[0] == 0xFF && head[1]&0xF6 == 0xF0
	case "application/pdf":
		return len(head) >= 5 && bytes.Equal(head[:5], []byte("%PDF-"))
	case "application/msword", "application/vnd.ms-excel":
		return len(head) >= 4 && head[0] == 0xD0 && head[1] == 0xCF && head[2] == 0x11 && head[3] == 0xE0
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return len(head) >= 4 && head[0] == 0x50 && head[1] == 0x4B && (head[2] == 0x03 || head[2] == 0x05) && head[3] == 0x04
	}
	return true
}

func riff(head []byte, form string) bool {
	return len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte(form))
}

func displayName(name string) string {
	if s := safeFilename(name); s != "" {
		return s
	}
	return "file"
}
