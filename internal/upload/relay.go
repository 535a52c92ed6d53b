package upload

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

// Host stores a file and answers with the raw response body.
type Host interface {
	Upload(ctx context.Context, file File) (string, error)
}

// Result is the success body of an upload.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

type Relay struct {
	host     Host
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

func NewRelay(host Host, logger *slog.Logger, recorder *metrics.Recorder) *Relay {
	return &Relay{host: host, logger: logger, recorder: recorder, now: time.Now}
}

// Upload validates p and forwards its file to the host once. A host reply
// that is not a URL counts as a failed upload.
func (r *Relay) Upload(ctx context.Context, p *Payload) (Result, error) {
	if p == nil {
		p = &Payload{}
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if r == nil || r.host == nil {
		return Result{}, apperr.Unavailable("file host is not configured")
	}

	start := r.now()
	body, err := r.host.Upload(ctx, *p.File)
	elapsed := r.now().Sub(start)
	if err == nil {
		body = strings.TrimSpace(body)
		if !strings.HasPrefix(body, "http") {
			err = apperr.New(apperr.KindUpstream, "Catbox upload failed").WithDetail(body)
		}
	}
	r.recorder.RecordUpload(p.File.Size, elapsed, err)

	if err != nil {
		logging.Error(r.logger, "upload failed", err, "id", p.ID, logging.FieldBytes, p.File.Size)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if _, ok := apperr.As(err); ok {
			return Result{}, err
		}
		return Result{}, apperr.Wrap(apperr.KindUpstream, "Upload failed", err).WithDetail(providers.Detail(err))
	}

	logging.Info(r.logger, "upload complete", "id", p.ID, "type", p.Type, logging.FieldBytes, p.File.Size,
		logging.FieldDurationMS, elapsed.Milliseconds())
	return Result{Success: true, ID: p.ID, Type: p.Type, Link: body}, nil
}
