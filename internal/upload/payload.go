// Package upload relays single files from the site to an anonymous file host.
package upload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
)

const (
	DefaultMaxBytes  = 200 << 20
	multipartMemory  = 8 << 20
	defaultFileName  = "upload"
	fallbackMIMEType = "application/octet-stream"
)

// File is one file ready to be streamed to the host.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Payload is a parsed upload request. Close releases any temp files the
// multipart parser created.
type Payload struct {
	ID    string
	Type  string
	File  *File
	close func() error
}

func (p *Payload) Close() error {
	if p == nil || p.close == nil {
		return nil
	}
	return p.close()
}

// Missing lists the required fields the payload lacks, in request order.
func (p Payload) Missing() []string {
	var missing []string
	if strings.TrimSpace(p.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(p.Type) == "" {
		missing = append(missing, "type")
	}
	if p.File == nil || p.File.Size == 0 {
		missing = append(missing, "file")
	}
	return missing
}

// Validate returns an input error naming every missing field.
func (p Payload) Validate() error {
	if missing := p.Missing(); len(missing) > 0 {
		return apperr.Input("Missing id, type or file").WithDetail(map[string]any{"missing": missing})
	}
	return nil
}

type jsonPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	File        string `json:"file"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// Parse reads a multipart or JSON upload request capped at maxBytes.
func Parse(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Payload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		return parseMultipart(r)
	case mediaType == "application/json" || mediaType == "":
		return parseJSON(r.Body)
	default:
		return nil, apperr.Input("Content-Type must be multipart/form-data or application/json").
			WithDetail(map[string]any{"contentType": mediaType})
	}
}

func parseMultipart(r *http.Request) (*Payload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, bodyError("Form parsing failed", err)
	}
	form := r.MultipartForm
	payload := &Payload{
		ID:    r.FormValue("id"),
		Type:  r.FormValue("type"),
		close: form.RemoveAll,
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		return payload, nil
	}
	file, err := openPart(headers[0])
	if err != nil {
		_ = form.RemoveAll()
		return nil, apperr.Wrap(apperr.KindInternal, "Form parsing failed", err)
	}
	closer := file.Body.(io.Closer)
	payload.File = file
	payload.close = func() error {
		return errors.Join(closer.Close(), form.RemoveAll())
	}
	return payload, nil
}

func openPart(h *multipart.FileHeader) (*File, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	contentType := h.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackMIMEType
	}
	name := h.Filename
	if name == "" {
		name = defaultFileName
	}
	return &File{Name: name, ContentType: contentType, Size: h.Size, Body: f}, nil
}

func parseJSON(body io.Reader) (*Payload, error) {
	var in jsonPayload
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		return nil, bodyError("Invalid JSON body", err)
	}
	payload := &Payload{ID: in.ID, Type: in.Type}
	if strings.TrimSpace(in.File) == "" {
		return payload, nil
	}

	data, contentType, err := decodeFile(in.File)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInput, "file must be base64 or a base64 data URL", err)
	}
	if in.ContentType != "" {
		contentType = in.ContentType
	}
	name := in.FileName
	if name == "" {
		name = fileName(in.ID, contentType)
	}
	payload.File = &File{Name: name, ContentType: contentType, Size: int64(len(data)), Body: bytes.NewReader(data)}
	return payload, nil
}

// decodeFile accepts plain base64 or a data URL such as data:audio/mpeg;base64,....
func decodeFile(raw string) ([]byte, string, error) {
	contentType := fallbackMIMEType
	encoded := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", errors.New("malformed data URL")
		}
		meta, isBase64 := strings.CutSuffix(meta, ";base64")
		if !isBase64 {
			return nil, "", errors.New("data URL is not base64 encoded")
		}
		if meta != "" {
			contentType = meta
		}
		encoded = data
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", err
	}
	return decoded, contentType, nil
}

func fileName(id, contentType string) string {
	base := strings.TrimSpace(id)
	if base == "" {
		base = defaultFileName
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return base + exts[0]
	}
	return base
}

func bodyError(message string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Wrap(apperr.KindTooLarge, "Upload exceeds size limit", err).
			WithDetail(map[string]any{"limitBytes": tooLarge.Limit})
	}
	return apperr.Wrap(apperr.KindInput, message, err).WithDetail(err.Error())
}
