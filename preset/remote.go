package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultsFile is where the defaults preset lives in a checkout. It is the
// default source and the file the export notice points at.
const DefaultsFile = "public/mist-defaults.json"

var ErrNoDefaultsURL = errors.New("no defaults url configured")

// Global client, mirroring the proxy-aware transport used for every fetch.
var httpClient = &http.Client{
	Transport: &headerTransport{Transport: http.DefaultTransport},
	Timeout:   30 * time.Second,
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "gomist")
	return t.Transport.RoundTrip(req)
}

// RemoteDefaults fetches the defaults document over http(s), or reads it
// from disk when URL is a plain path or a file:// URL.
type RemoteDefaults struct {
	URL    string
	Client *http.Client
	// Now stamps the cache-busting query parameter.
	Now func() time.Time
}

func NewRemoteDefaults(rawURL string) *RemoteDefaults {
	return &RemoteDefaults{URL: rawURL, Client: httpClient, Now: time.Now}
}

// Fetch downloads and decodes the defaults document. The request bypasses
// caches and carries a v=<unix millis> query parameter.
func (r *RemoteDefaults) Fetch(ctx context.Context) (map[string]any, error) {
	if r.URL == "" {
		return nil, ErrNoDefaultsURL
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid defaults url %q: %w", r.URL, err)
	}
	switch {
	case u.Scheme == "file":
		return readDefaultsFile(u.Path)
	case len(u.Scheme) <= 1:
		// plain paths, including windows drive letters
		return readDefaultsFile(r.URL)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(r.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = httpClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bad response status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return decodeDefaults(body)
}

func readDefaultsFile(path string) (map[string]any, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}
	return decodeDefaults(body)
}

func decodeDefaults(body []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode defaults: %w", err)
	}
	return doc, nil
}

func (r *RemoteDefaults) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
