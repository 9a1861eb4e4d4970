package store_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/store"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
)

type hashIndex map[string]string

func (h hashIndex) KnownHash(name string) (string, bool) {
	v, ok := h[name]
	return v, ok
}

func (h hashIndex) Claim(name, sum string) error {
	if v, ok := h[name]; ok && v != sum {
		return zerr.Wrap(domain.ErrHashMismatch, "refusing "+name)
	}
	return nil
}

// takenIndex reports every name as claimed by other content.
type takenIndex struct{}

func (takenIndex) KnownHash(string) (string, bool) { return "", false }

func (takenIndex) Claim(name, _ string) error {
	return zerr.Wrap(domain.ErrFileNameConflict, "refusing "+name)
}

func sum(data string) string {
	s := sha256.Sum256([]byte(data))
	return hex.EncodeToString(s[:])
}

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "mods")
	s, err := store.NewStore(dir, http.DefaultClient)
	require.NoError(t, err)
	return s, dir
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFetchAndVerify_CacheHitMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jar"), []byte("alpha"), domain.FilePerm))

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin:   "a",
		URL:      srv.URL + "/a.jar",
		FileName: "a.jar",
	}, hashIndex{"a.jar": sum("alpha")})
	require.NoError(t, err)

	assert.True(t, res.Cached)
	assert.Equal(t, "a.jar", res.File.Name)
	assert.Equal(t, sum("alpha"), res.File.SHA256)
	assert.Equal(t, int32(0), hits.Load())
}

func TestFetchAndVerify_DirectURLDerivesNameFromRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/files/optifine-1.20.jar", http.StatusFound)
	})
	mux.HandleFunc("/files/optifine-1.20.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("optifine"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, dir := newStore(t)

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin: domain.ModReference(srv.URL + "/latest"),
		URL:    srv.URL + "/latest",
	}, hashIndex{})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, "optifine-1.20.jar", res.File.Name)
	assert.Equal(t, srv.URL+"/latest", res.File.URL)
	assert.Equal(t, sum("optifine"), res.File.SHA256)
	assert.Equal(t, []string{"optifine-1.20.jar"}, dirNames(t, dir))
}

func TestFetchAndVerify_DerivedNameAlreadyCached(t *testing.T) {
	var bodies atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		bodies.Add(1)
		_, _ = w.Write([]byte("file"))
	}))
	defer srv.Close()

	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.jar"), []byte("file"), domain.FilePerm))

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin: "direct",
		URL:    srv.URL + "/file.jar",
	}, hashIndex{"file.jar": sum("file")})
	require.NoError(t, err)

	assert.True(t, res.Cached)
	assert.Equal(t, int32(1), bodies.Load())
	assert.Equal(t, []string{"file.jar"}, dirNames(t, dir))
}

func TestFetchAndVerify_ShortBodyLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(make([]byte, 500))
	}))
	defer srv.Close()

	s, dir := newStore(t)

	_, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin: "x",
		URL:    srv.URL + "/x.jar",
	}, hashIndex{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDownloadIncomplete), "got %v", err)
	assert.Empty(t, dirNames(t, dir))
}

func TestFetchAndVerify_HashMismatchRemovesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jar"), []byte("corrupt"), domain.FilePerm))

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin:   "a",
		URL:      srv.URL + "/a.jar",
		FileName: "a.jar",
	}, hashIndex{"a.jar": sum("original")})
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrHashMismatch))
	assert.True(t, errors.Is(err, domain.ErrDownloadIncomplete))
	assert.Equal(t, "a.jar", res.File.Name)
	assert.Empty(t, dirNames(t, dir))
}

func TestFetchAndVerify_ClaimedNameKeepsExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("second"))
	}))
	defer srv.Close()

	s, dir := newStore(t)
	target := filepath.Join(dir, "mod.jar")
	require.NoError(t, os.WriteFile(target, []byte("first"), domain.FilePerm))

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin: "b",
		URL:    srv.URL + "/b/mod.jar",
	}, takenIndex{})
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrFileNameConflict))
	assert.False(t, errors.Is(err, domain.ErrHashMismatch))
	assert.Equal(t, "mod.jar", res.File.Name)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
	assert.Equal(t, []string{"mod.jar"}, dirNames(t, dir))
}

func TestFetchAndVerify_RefetchRepairsCorruptFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("original"))
	}))
	defer srv.Close()

	s, dir := newStore(t)
	target := filepath.Join(dir, "a.jar")
	require.NoError(t, os.WriteFile(target, []byte("corrupt"), domain.FilePerm))

	res, err := s.FetchAndVerify(context.Background(), domain.FetchRequest{
		Origin:   "a",
		URL:      srv.URL + "/a.jar",
		FileName: "a.jar",
	}, hashIndex{"a.jar": sum("original")})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestFetchAndVerify_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte("root"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		req      domain.FetchRequest
		expected error
	}{
		{
			name:     "not found",
			req:      domain.FetchRequest{Origin: "a", URL: srv.URL + "/missing.jar"},
			expected: domain.ErrUnexpectedStatus,
		},
		{
			name:     "no file name in url",
			req:      domain.FetchRequest{Origin: "a", URL: srv.URL + "/"},
			expected: domain.ErrInvalidFileName,
		},
		{
			name:     "hint escapes directory",
			req:      domain.FetchRequest{Origin: "a", URL: srv.URL + "/x.jar", FileName: "../x.jar"},
			expected: domain.ErrInvalidFileName,
		},
		{
			name:     "unreachable",
			req:      domain.FetchRequest{Origin: "a", URL: "http://127.0.0.1:1/x.jar"},
			expected: domain.ErrTransferFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dir := newStore(t)

			_, err := s.FetchAndVerify(context.Background(), tt.req, hashIndex{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.Empty(t, dirNames(t, dir))
		})
	}
}

func TestListAndRemove(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jar"), []byte("a"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jar"), []byte("b"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".a.jar.123.part"), []byte("p"), domain.FilePerm))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), domain.DirPerm))

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jar", "b.jar"}, names)

	require.NoError(t, s.Remove("a.jar"))
	require.NoError(t, s.Remove("a.jar"))

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jar"}, names)

	assert.True(t, errors.Is(s.Remove("../b.jar"), domain.ErrInvalidFileName))
}
