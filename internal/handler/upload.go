package handler

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/service"
)

// multipartMemory: сколько формы держать в памяти; остальное уходит во временные файлы.
const multipartMemory = 32 << 20

// uploadForm: разобранная multipart-форма сообщения.
type uploadForm struct {
	form    *multipart.Form
	closers []io.Closer

	Primary         *service.Upload
	Attachments     []service.Upload
	AttachmentTypes []model.AttachmentType
}

func isMultipart(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "multipart/form-data"
}

// parseUploadForm читает поля file, attachments и attachment_types.
// attachment_types можно передать повторяющимся полем или одной строкой через запятую.
func parseUploadForm(w http.ResponseWriter, r *http.Request, maxBody int64) (*uploadForm, error) {
	if r.ContentLength > maxBody {
		return nil, &http.MaxBytesError{Limit: maxBody}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}
	f := &uploadForm{form: r.MultipartForm}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		up, err := f.open(files[0])
		if err != nil {
			f.Close()
			return nil, err
		}
		f.Primary = &up
	}
	for _, fh := range r.MultipartForm.File["attachments"] {
		up, err := f.open(fh)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.Attachments = append(f.Attachments, up)
	}
	for _, v := range r.MultipartForm.Value["attachment_types"] {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.AttachmentTypes = append(f.AttachmentTypes, model.AttachmentType(t))
			}
		}
	}
	return f, nil
}

func (f *uploadForm) open(fh *multipart.FileHeader) (service.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return service.Upload{}, err
	}
	f.closers = append(f.closers, file)
	return service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     file,
	}, nil
}

func (f *uploadForm) value(key string) string {
	if vs := f.form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// voiceDuration: длительность голосового сообщения, присланная клиентом; 0 если нет или не число.
func (f *uploadForm) voiceDuration() float64 {
	d, err := strconv.ParseFloat(f.value("voice_duration"), 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Close закрывает файлы и удаляет временные файлы формы.
func (f *uploadForm) Close() {
	for _, c := range f.closers {
		c.Close()
	}
	if f.form != nil {
		_ = f.form.RemoveAll()
	}
}
