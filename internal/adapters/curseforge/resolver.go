// Package curseforge resolves CurseForge project pages to direct download links.
package curseforge

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	versionHeaderSelector = ".e-sidebar-subheader"
	fileListSelector      = ".cf-recentfiles"
)

var (
	projectPattern = regexp.MustCompile(`^https?://www\.curseforge\.com/minecraft/mc-mods/`)
	fileIDPattern  = regexp.MustCompile(`/files/\d+`)
	versionPattern = regexp.MustCompile(`\d+\.\d+`)
)

// Resolver implements ports.Resolver for CurseForge mod pages.
type Resolver struct {
	client *http.Client
}

var _ ports.Resolver = (*Resolver)(nil)

// New creates a Resolver that fetches pages with client.
func New(client *http.Client) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{client: client}
}

// Matches reports whether ref is a CurseForge mod page.
func (r *Resolver) Matches(ref domain.ModReference) bool {
	return projectPattern.MatchString(ref.String())
}

// Resolve returns the download link of the newest file listed for any label in constraint.
// A reference that already names a file skips the page lookup.
func (r *Resolver) Resolve(
	ctx context.Context,
	ref domain.ModReference,
	constraint domain.VersionConstraint,
) (string, error) {
	fileURL := ref.String()
	if !fileIDPattern.MatchString(fileURL) {
		latest, err := r.latestFile(ctx, fileURL, constraint)
		if err != nil {
			return "", zerr.With(err, "mod", fileURL)
		}
		fileURL = latest
	}

	return downloadURL(fileURL), nil
}

func downloadURL(fileURL string) string {
	return strings.ReplaceAll(fileURL, "/files/", "/download/") + "/file"
}

func (r *Resolver) latestFile(ctx context.Context, pageURL string, constraint domain.VersionConstraint) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", zerr.Wrap(domain.ErrProjectPageFailed, err.Error())
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", zerr.Wrap(domain.ErrProjectPageFailed, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.Wrap(domain.ErrProjectPageFailed, resp.Status), "status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", zerr.Wrap(domain.ErrProjectPageFailed, err.Error())
	}

	href, ok := newestMatching(doc, constraint)
	if !ok {
		err := zerr.Wrap(domain.ErrVersionNotFound, "no listed file for "+strings.Join(constraint, ", "))
		return "", zerr.With(err, "versions", strings.Join(constraint, ","))
	}

	link, err := resp.Request.URL.Parse(href)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrProjectPageFailed, err.Error()), "href", href)
	}
	return link.String(), nil
}

// newestMatching pairs version headers with file lists by position and picks the
// entry with the highest epoch among the groups whose label is accepted.
func newestMatching(doc *goquery.Document, constraint domain.VersionConstraint) (string, bool) {
	headers := doc.Find(versionHeaderSelector)
	lists := doc.Find(fileListSelector)

	var (
		best     string
		bestTime int64
		found    bool
	)

	for i := range min(headers.Length(), lists.Length()) {
		label := versionPattern.FindString(headers.Eq(i).Text())
		if label == "" || !constraint.Contains(label) {
			continue
		}

		lists.Eq(i).Find("li").Each(func(_ int, li *goquery.Selection) {
			epochAttr, ok := li.Find("abbr").First().Attr("data-epoch")
			if !ok {
				return
			}
			epoch, err := strconv.ParseInt(strings.TrimSpace(epochAttr), 10, 64)
			if err != nil {
				return
			}
			href, ok := li.Find("a").First().Attr("href")
			if !ok || href == "" {
				return
			}
			if !found || epoch > bestTime {
				best, bestTime, found = href, epoch, true
			}
		})
	}

	return best, found
}
