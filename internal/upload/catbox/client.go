// Package catbox uploads files to catbox.moe.
package catbox

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/upload"
)

const (
	ProviderName = "catbox"
	DefaultURL   = "https://catbox.moe/user/api.php"
	// DefaultTimeout bounds one upload; the server write timeout must cover
	// the request body read plus this.
	DefaultTimeout  = 150 * time.Second
	maxResponseBody = 4 << 10
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	URL        string
	UserHash   string
	HTTPClient *http.Client
}

type Client struct {
	url        string
	userHash   string
	httpClient httpDoer
}

func NewClient(cfg Config) *Client {
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Client{url: endpoint, userHash: cfg.UserHash, httpClient: doer}
}

// Upload streams file as a fileupload request and returns the response text,
// which is the public link on success.
func (c *Client) Upload(ctx context.Context, file upload.File) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(c.writeForm(form, file))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, pr)
	if err != nil {
		pr.Close()
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		pr.CloseWithError(err)
		return "", fmt.Errorf("%s: %w", ProviderName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", ProviderName, err)
	}
	text := strings.TrimSpace(string(body))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &providers.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode, Body: text}
	}
	return text, nil
}

func (c *Client) writeForm(form *multipart.Writer, file upload.File) error {
	if err := form.WriteField("reqtype", "fileupload"); err != nil {
		return err
	}
	if c.userHash != "" {
		if err := form.WriteField("userhash", c.userHash); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="fileToUpload"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.ContentType)
	part, err := form.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return err
	}
	return form.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
