// Package store implements the download directory as a hash-verified content store.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ContentStore on a local directory.
type Store struct {
	dir    string
	client *http.Client
}

var _ ports.ContentStore = (*Store)(nil)

// NewStore creates the download directory if needed and returns a store backed by it.
func NewStore(dir string, client *http.Client) (*Store, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "dir", dir)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{dir: filepath.Clean(dir), client: client}, nil
}

// Dir returns the download directory.
func (s *Store) Dir() string {
	return s.dir
}

// FetchAndVerify implements ports.ContentStore.
func (s *Store) FetchAndVerify(
	ctx context.Context,
	req domain.FetchRequest,
	index ports.HashIndex,
) (domain.FetchResult, error) {
	if req.FileName != "" {
		if err := validateName(req.FileName); err != nil {
			return domain.FetchResult{}, err
		}
		if hit, ok := s.cached(req, req.FileName, index); ok {
			return hit, nil
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, http.NoBody)
	if err != nil {
		return domain.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrTransferFailed, err.Error()), "url", req.URL)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return domain.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrTransferFailed, err.Error()), "url", req.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := zerr.With(zerr.Wrap(domain.ErrUnexpectedStatus, resp.Status), "url", req.URL)
		return domain.FetchResult{}, zerr.With(err, "status", resp.StatusCode)
	}

	name := req.FileName
	if name == "" {
		name = path.Base(resp.Request.URL.Path)
		if err := validateName(name); err != nil {
			return domain.FetchResult{}, zerr.With(err, "url", resp.Request.URL.String())
		}
		if hit, ok := s.cached(req, name, index); ok {
			return hit, nil
		}
	}

	sum, err := s.download(resp, name, index)
	if err != nil {
		return domain.FetchResult{File: domain.LockedFile{Name: name}}, zerr.With(err, "url", req.URL)
	}

	file := domain.LockedFile{Name: name, URL: req.URL, ModURL: req.Origin, SHA256: sum}
	return domain.FetchResult{File: file}, nil
}

// cached reports a hit when name exists on disk and hashes to the recorded value.
func (s *Store) cached(req domain.FetchRequest, name string, index ports.HashIndex) (domain.FetchResult, bool) {
	known, ok := index.KnownHash(name)
	if !ok || known == "" {
		return domain.FetchResult{}, false
	}

	sum, err := hashFile(filepath.Join(s.dir, name))
	if err != nil || sum != known {
		return domain.FetchResult{}, false
	}
	if err := index.Claim(name, sum); err != nil {
		return domain.FetchResult{}, false
	}

	return domain.FetchResult{
		File:   domain.LockedFile{Name: name, URL: req.URL, ModURL: req.Origin, SHA256: sum},
		Cached: true,
	}, true
}

// download streams the body into a partial file, verifies it and moves it into place.
func (s *Store) download(resp *http.Response, name string, index ports.HashIndex) (string, error) {
	target := filepath.Join(s.dir, name)

	tmpFile, err := os.CreateTemp(s.dir, "."+name+".*"+domain.PartialSuffix)
	if err != nil {
		return "", zerr.Wrap(domain.ErrStoreWriteFailed, err.Error())
	}
	tmpName := tmpFile.Name()

	// The partial file never survives a failed transfer.
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	h := sha256.New()
	written, copyErr := io.Copy(io.MultiWriter(tmpFile, h), resp.Body)
	closeErr := tmpFile.Close()

	if copyErr != nil {
		if errors.Is(copyErr, io.ErrUnexpectedEOF) {
			return "", incomplete(resp.ContentLength, written)
		}
		return "", zerr.Wrap(domain.ErrTransferFailed, copyErr.Error())
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return "", incomplete(resp.ContentLength, written)
	}
	if closeErr != nil {
		return "", zerr.Wrap(domain.ErrStoreWriteFailed, closeErr.Error())
	}

	sum := hex.EncodeToString(h.Sum(nil))
	// The claim must precede the rename so a concurrent fetch of the same name cannot overwrite it.
	if err := index.Claim(name, sum); err != nil {
		if errors.Is(err, domain.ErrHashMismatch) {
			_ = os.Remove(target)
		}
		return "", err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return "", zerr.Wrap(domain.ErrStoreWriteFailed, err.Error())
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", zerr.Wrap(domain.ErrStoreWriteFailed, err.Error())
	}

	return sum, nil
}

func incomplete(expected, written int64) error {
	err := zerr.With(zerr.Wrap(domain.ErrDownloadIncomplete, "short body"), "expected", strconv.FormatInt(expected, 10))
	return zerr.With(err, "received", strconv.FormatInt(written, 10))
}

// List returns the regular files in the download directory, skipping hidden and partial files.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "dir", s.dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, domain.PartialSuffix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove deletes name from the download directory. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "file", name)
	}
	return nil
}

func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..", name == "/":
	case strings.ContainsAny(name, `/\`):
	case strings.HasPrefix(name, "."):
	default:
		return nil
	}
	return zerr.With(zerr.Wrap(domain.ErrInvalidFileName, "unusable file name"), "file", name)
}

func hashFile(p string) (string, error) {
	//nolint:gosec // p is joined from the download directory and a validated name
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
