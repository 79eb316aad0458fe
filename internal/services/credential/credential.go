// Package services implements the credential service: deterministic
// construction of a subscriber's playlist access URL and a bounded
// reachability probe against it.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/criartebr/stream-panel/internal/models"
)

// ProbeTimeout bounds the reachability check.
const ProbeTimeout = 10 * time.Second

// BuildAccessURL derives the playlist URL from its three inputs. The URL
// is recomputed whenever any of them changes and is never stored
// independently of them.
func BuildAccessURL(endpointBaseURL, username, password string) string {
	return fmt.Sprintf("%s/get.php?username=%s&password=%s&type=m3u_plus&output=mpegts",
		endpointBaseURL, username, password)
}

// CredentialService checks access-URL reachability.
type CredentialService struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewCredentialService creates a CredentialService with the probe timeout.
func NewCredentialService(log *slog.Logger) *CredentialService {
	return &CredentialService{
		httpClient: &http.Client{Timeout: ProbeTimeout},
		log:        log,
	}
}

// ValidateAccessURL probes the URL with a bounded GET. Any non-200 status
// and any transport failure (DNS, timeout, refused) becomes a
// ProbeResult with Reachable=false; this call never returns an error.
func (s *CredentialService) ValidateAccessURL(ctx context.Context, url string) models.ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.ProbeResult{Reachable: false, Detail: err.Error()}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("access url probe failed", slog.String("url", url), slog.Any("err", err))
		return models.ProbeResult{Reachable: false, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ProbeResult{Reachable: false, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return models.ProbeResult{Reachable: true, Detail: "playlist is accessible"}
}
