// Package download fetches remote grammar files.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
)

// MaxSize caps the size of a downloaded grammar file.
const MaxSize = 16 << 20

// UserAgent is sent with every request.
var UserAgent = "bce"

// Download errors.
var (
	ErrBadURL    = errors.New("invalid grammar URL")
	ErrBadStatus = errors.New("unexpected HTTP status")
	ErrTooLarge  = errors.New("grammar file too large")
)

// Fetch downloads rawURL into a new temp file and returns its path. The
// temp file keeps the extension of the URL path so the grammar format can
// still be inferred from it. The caller removes the file. A nil client
// means http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrBadURL, u.Scheme)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", ErrBadStatus, u.Redacted(), resp.Status)
	}

	tmp, err := os.CreateTemp("", "bce-grammar-*"+path.Ext(u.Path))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("reading response: %w", err)
	}
	if n > MaxSize {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxSize)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmpName, nil
}
