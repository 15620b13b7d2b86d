// Package imagesrc fetches images from URLs or local paths and probes their
// dimensions.
package imagesrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcanaland/framesmith/internal/ports"
)

var maxImageSize int64 = 64 << 20

// Source implements ports.ImageSource
type Source struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	limitedHosts []string
}

// New creates a Source. Requests to hosts ending in one of limitedHosts wait
// on limiter first; pass the catalog's limiter so art downloads share its
// budget.
func New(httpClient *http.Client, limiter *rate.Limiter, limitedHosts ...string) *Source {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Source{httpClient: httpClient, limiter: limiter, limitedHosts: limitedHosts}
}

// Fetch loads ref and probes it. Refs without an http(s) scheme are read
// from disk.
func (s *Source) Fetch(ctx context.Context, ref string) (ports.Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err = s.download(ctx, ref)
	} else {
		data, err = os.ReadFile(strings.TrimPrefix(ref, "file://"))
	}
	if err != nil {
		return ports.Image{}, fmt.Errorf("error fetching %s: %w", ref, err)
	}

	img, err := Probe(data)
	if err != nil {
		return ports.Image{}, fmt.Errorf("error probing %s: %w", ref, err)
	}
	return img, nil
}

func (s *Source) download(ctx context.Context, ref string) ([]byte, error) {
	if s.limited(ref) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	return data, nil
}

func (s *Source) limited(ref string) bool {
	if s.limiter == nil {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, h := range s.limitedHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
