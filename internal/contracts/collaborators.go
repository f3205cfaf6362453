package contracts

import (
	"context"

	"github.com/Tangesion/MediaPorter/internal/models"
)

// Backend resolves media pages to streams and performs transfers. Errors
// surface as raw text; callers classify them by pattern only.
type Backend interface {
	// Probe fetches the format catalogue without transferring media.
	Probe(ctx context.Context, url string, opts models.ExtractOptions) ([]models.Format, error)

	// Extract downloads the selected streams and reports transient progress
	// through onProgress, which may be nil.
	Extract(ctx context.Context, url string, opts models.ExtractOptions, onProgress func(models.ProgressUpdate)) (models.ExtractResult, error)
}

// QRClient is the login challenge protocol. Poll is idempotent and safe to
// call repeatedly; an expired challenge must be regenerated; Finalize is
// called at most once per successful challenge.
type QRClient interface {
	GenerateChallenge(ctx context.Context) (models.QRChallenge, error)
	Poll(ctx context.Context, challengeKey string) (models.QRPollResult, error)
	Finalize(ctx context.Context, confirmURL string) (cookiePath, report string, err error)
}
