package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
)

// Remote uploads files to an image server with PUT and checks for existing
// ones with HEAD.
type Remote struct {
	httpClient *http.Client
	baseURL    string
	prefix     string
}

// NewRemote creates a Remote store for the server at baseURL
func NewRemote(httpClient *http.Client, baseURL, prefix string) *Remote {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Remote{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     strings.Trim(prefix, "/"),
	}
}

// Save uploads data and returns its public URL
func (r *Remote) Save(ctx context.Context, data []byte, subdir, filename string) (string, error) {
	ref, err := r.url(subdir, filename)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ref, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", http.DetectContentType(data))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", ref, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return "", fmt.Errorf("error uploading %s: status %d", ref, resp.StatusCode)
	}
	return ref, nil
}

// Lookup reports whether the server already has the file
func (r *Remote) Lookup(ctx context.Context, subdir, filename string) (string, bool) {
	ref, err := r.url(subdir, filename)
	if err != nil {
		return "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, ref, nil)
	if err != nil {
		return "", false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	resp.Body.Close()
	return ref, resp.StatusCode == http.StatusOK
}

func (r *Remote) url(subdir, filename string) (string, error) {
	rel, err := CleanRel(path.Join(subdir, filename))
	if err != nil {
		return "", err
	}
	return r.baseURL + path.Join("/", r.prefix, rel), nil
}
