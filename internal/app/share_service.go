package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/share"
)

// ShareService builds share payloads.
type ShareService struct {
	pageURL string
}

// NewShareService creates a share service. pageURL is the link shared on
// targets that take one when the request does not name a page.
func NewShareService(pageURL string) *ShareService {
	return &ShareService{pageURL: pageURL}
}

// Share formats record for the named target.
func (s *ShareService) Share(ctx context.Context, record domain.QuoteRecord, target, pageURL string) (share.Payload, error) {
	if err := record.Validate(); err != nil {
		return share.Payload{}, err
	}

	t, err := share.ParseTarget(target)
	if err != nil {
		return share.Payload{}, err
	}

	if pageURL == "" {
		pageURL = s.pageURL
	}

	payload, err := share.Format(record, t, pageURL)
	if err != nil {
		return share.Payload{}, err
	}

	logging.FromContext(ctx).Debug("share payload built",
		slog.String("target", string(t)),
		slog.String("action", string(payload.Action)),
	)

	return payload, nil
}
