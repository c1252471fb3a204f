package imaging

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrMalformedDataURI is returned for data: sources missing the comma
// separator or carrying undecodable payloads.
var ErrMalformedDataURI = errors.New("imaging: malformed data URI")

// DefaultCacheSize bounds the URL cache entry count.
const DefaultCacheSize = 50

// fetchEntry is the cached unit: the retrieval itself rather than just its
// bytes, so concurrent callers for the same URL attach to one request.
type fetchEntry struct {
	done chan struct{}
	data []byte
	err  error
}

// Loader resolves image sources to raw bytes. HTTP results go through a
// bounded LRU keyed by URL; a failed fetch evicts its entry so the next call
// retries instead of replaying the failure.
type Loader struct {
	client *http.Client

	mu    sync.Mutex
	cache *lru.Cache[string, *fetchEntry]
}

// NewLoader creates a loader with the given cache capacity (0 uses the
// default) and HTTP client (nil uses http.DefaultClient).
func NewLoader(cacheSize int, client *http.Client) *Loader {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if client == nil {
		client = http.DefaultClient
	}
	c, _ := lru.New[string, *fetchEntry](cacheSize)
	return &Loader{client: client, cache: c}
}

// Reset drops every cached entry.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Purge()
}

// Load resolves a source to raw image bytes. Supported forms:
// data:[mediatype][;base64],<data> URIs, http(s):// URLs, file:// URIs and
// bare filesystem paths. Returned bytes are an independent copy.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.fetch(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("imaging: parse file URI %q: %w", src, err)
		}
		return os.ReadFile(u.Path)
	default:
		// bare path, absolute or relative to the working directory
		return os.ReadFile(src)
	}
}

// LoadImage loads and decodes a source in one step.
func (l *Loader) LoadImage(ctx context.Context, src string) (*Image, error) {
	data, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return nil, ErrMalformedDataURI
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
		}
		return data, nil
	}
	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	return []byte(decoded), nil
}

func (l *Loader) fetch(ctx context.Context, u string) ([]byte, error) {
	l.mu.Lock()
	if e, ok := l.cache.Get(u); ok {
		l.mu.Unlock()
		return e.wait(ctx)
	}
	e := &fetchEntry{done: make(chan struct{})}
	l.cache.Add(u, e)
	l.mu.Unlock()

	e.data, e.err = l.doFetch(ctx, u)
	if e.err != nil {
		// evict so a subsequent call retries cleanly
		l.mu.Lock()
		if cur, ok := l.cache.Peek(u); ok && cur == e {
			l.cache.Remove(u)
		}
		l.mu.Unlock()
	}
	close(e.done)
	return e.result()
}

func (e *fetchEntry) wait(ctx context.Context) ([]byte, error) {
	select {
	case <-e.done:
		return e.result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// result hands each caller an independent copy so shared cache state cannot
// be mutated through the returned slice.
func (e *fetchEntry) result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return append([]byte(nil), e.data...), nil
}

func (l *Loader) doFetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("imaging: request %q: %w", u, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imaging: fetch %q: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("imaging: fetch %q: unexpected status %s", u, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imaging: read %q: %w", u, err)
	}
	return data, nil
}
