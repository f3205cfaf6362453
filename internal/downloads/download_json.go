package downloads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/domain/errconsts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// probePayload is the subset of the backend's JSON dump the resolver needs.
type probePayload struct {
	Title   string          `json:"title"`
	Formats []models.Format `json:"formats"`
}

// Probe fetches the format catalogue for a URL without transferring media.
func (d *Downloader) Probe(ctx context.Context, url string, opts models.ExtractOptions) ([]models.Format, error) {
	cmd := buildProbeCommand(ctx, url, opts)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf(errconsts.YTDLPFailure, errors.New(msg))
	}

	var payload probePayload
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse probe JSON: %w", err)
	}

	logging.D(2, "Probe for %q returned %d formats", url, len(payload.Formats))
	return payload.Formats, nil
}
