package upload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
)

func multipartRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestParseMultipart(t *testing.T) {
	req := multipartRequest(t, map[string]string{"id": "audio_1", "type": "audio"}, "clip.mp3", []byte("ID3 data"))

	p, err := Parse(httptest.NewRecorder(), req, 0)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "audio_1", p.ID)
	assert.Equal(t, "audio", p.Type)
	require.NotNil(t, p.File)
	assert.Equal(t, "clip.mp3", p.File.Name)
	assert.Equal(t, int64(8), p.File.Size)
	data, err := io.ReadAll(p.File.Body)
	require.NoError(t, err)
	assert.Equal(t, "ID3 data", string(data))
	assert.NoError(t, p.Validate())
}

func TestParseMultipartMissingFields(t *testing.T) {
	req := multipartRequest(t, map[string]string{"type": "audio"}, "", nil)

	p, err := Parse(httptest.NewRecorder(), req, 0)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, []string{"id", "file"}, p.Missing())
	verr := p.Validate()
	assert.Equal(t, apperr.KindInput, apperr.KindOf(verr))
}

func TestParseMultipartTooLarge(t *testing.T) {
	req := multipartRequest(t, map[string]string{"id": "a", "type": "audio"}, "big.bin", bytes.Repeat([]byte{1}, 4096))

	_, err := Parse(httptest.NewRecorder(), req, 1024)
	require.Error(t, err)
	assert.Equal(t, apperr.KindTooLarge, apperr.KindOf(err))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperr.StatusOf(err))
}

func TestParseJSONBase64(t *testing.T) {
	req := jsonRequest(t, map[string]string{
		"id":   "img_9",
		"type": "image",
		"file": base64.StdEncoding.EncodeToString([]byte("png bytes")),
	})

	p, err := Parse(httptest.NewRecorder(), req, 0)
	require.NoError(t, err)
	require.NotNil(t, p.File)
	assert.Equal(t, "application/octet-stream", p.File.ContentType)
	assert.Equal(t, int64(9), p.File.Size)
	assert.Equal(t, "img_9", p.File.Name)
}

func TestParseJSONDataURL(t *testing.T) {
	req := jsonRequest(t, map[string]string{
		"id":   "img_9",
		"type": "image",
		"file": "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes")),
	})

	p, err := Parse(httptest.NewRecorder(), req, 0)
	require.NoError(t, err)
	require.NotNil(t, p.File)
	assert.Equal(t, "image/png", p.File.ContentType)
	assert.Equal(t, "img_9.png", p.File.Name)
}

func TestParseJSONRejectsBadBase64(t *testing.T) {
	req := jsonRequest(t, map[string]string{"id": "x", "type": "image", "file": "%%%"})

	_, err := Parse(httptest.NewRecorder(), req, 0)
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")

	_, err := Parse(httptest.NewRecorder(), req, 0)
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
}

func TestParseRejectsUnknownContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err := Parse(httptest.NewRecorder(), req, 0)
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
}
