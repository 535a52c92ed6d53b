package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

// upstreamFailure classifies a provider error for the client. Upstream 404s
// become our 404; everything else is a 500 carrying the upstream status/body.
func upstreamFailure(err error, notFound, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, providers.ErrProviderUnavailable) {
		return apperr.Wrap(apperr.KindUnavailable, "Upstream provider unavailable", err)
	}
	if up, ok := providers.AsUpstreamError(err); ok && up.StatusCode == http.StatusNotFound {
		return apperr.Wrap(apperr.KindNotFound, notFound, err)
	}
	return apperr.Wrap(apperr.KindUpstream, message, err).WithDetail(providers.Detail(err))
}
