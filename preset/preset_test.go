package preset

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSendsCacheBustingRequest(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"timeScale": 0.5, "bloom": false}`))
	}))
	defer srv.Close()

	r := NewRemoteDefaults(srv.URL + "/mist-defaults.json")
	r.Client = srv.Client()
	r.Now = func() time.Time { return time.UnixMilli(1700000000123) }

	doc, err := r.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.5, doc["timeScale"])
	assert.Equal(t, false, doc["bloom"])

	require.NotNil(t, got)
	assert.Equal(t, "/mist-defaults.json", got.URL.Path)
	assert.Equal(t, "1700000000123", got.URL.Query().Get("v"))
	assert.Equal(t, "no-store", got.Header.Get("Cache-Control"))
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewRemoteDefaults(srv.URL)
	r.Client = srv.Client()
	_, err := r.Fetch(context.Background())
	assert.ErrorContains(t, err, "404")
}

func TestFetchRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timeScale":`))
	}))
	defer srv.Close()

	r := NewRemoteDefaults(srv.URL)
	r.Client = srv.Client()
	_, err := r.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchWithoutURL(t *testing.T) {
	_, err := NewRemoteDefaults("").Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoDefaultsURL)
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := &FileStore{Dir: dir}

	_, err := s.Get(CaptureKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(CaptureKey, []byte(`{"timeScale":0.5}`)))
	data, err := s.Get(CaptureKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timeScale":0.5}`, string(data))

	require.NoError(t, s.Set(CaptureKey, []byte(`{}`)))
	data, err = s.Get(CaptureKey)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	buf := []byte("abc")
	require.NoError(t, s.Set("k", buf))
	buf[0] = 'x'
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) SetClipboard(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeNotifier struct {
	notices []string
	prompt  string
	shown   string
}

func (n *fakeNotifier) Notify(message string) { n.notices = append(n.notices, message) }
func (n *fakeNotifier) ShowText(prompt, text string) {
	n.prompt = prompt
	n.shown = text
}

func TestExportCopiesAndConfirms(t *testing.T) {
	cb := &fakeClipboard{}
	n := &fakeNotifier{}
	e := &Exporter{Clipboard: cb, Notifier: n, Logger: zerolog.Nop()}

	res := e.Export([]byte(`{"a": 1}`))
	assert.Equal(t, ExportCopied, res)
	assert.Equal(t, `{"a": 1}`, cb.text)
	assert.Equal(t, []string{CopiedMessage}, n.notices)
	assert.Contains(t, CopiedMessage, "public/mist-defaults.json")
	assert.Empty(t, n.shown)
}

func TestExportFallsBackToManualCopy(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("denied")}
	n := &fakeNotifier{}
	e := &Exporter{Clipboard: cb, Notifier: n, Logger: zerolog.Nop()}

	res := e.Export([]byte(`{"a": 1}`))
	assert.Equal(t, ExportManual, res)
	assert.Empty(t, n.notices)
	assert.Equal(t, ManualPrompt, n.prompt)
	assert.Equal(t, `{"a": 1}`, n.shown)
}

func TestExportWithoutClipboard(t *testing.T) {
	n := &fakeNotifier{}
	e := &Exporter{Notifier: n, Logger: zerolog.Nop()}
	assert.Equal(t, ExportManual, e.Export([]byte(`{}`)))
	assert.Equal(t, "{}", n.shown)
}

func TestFetchReadsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mist-defaults.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"maxDpr": 1.5}`), 0644))

	doc, err := NewRemoteDefaults(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.5, doc["maxDpr"])

	doc, err = NewRemoteDefaults("file://" + path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.5, doc["maxDpr"])
}

func TestFetchMissingLocalFile(t *testing.T) {
	_, err := NewRemoteDefaults(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
