package domain

// FetchRequest describes one file the content store should provide.
type FetchRequest struct {
	// Origin is the mod reference the file is fetched for.
	Origin ModReference
	// URL is the download address.
	URL string
	// FileName is the expected file name. Empty means the name is derived from the final URL.
	FileName string
}

// FetchResult is the verified file returned by the content store.
type FetchResult struct {
	File LockedFile
	// Cached is true when the file was already present with the recorded hash.
	Cached bool
}

// Outcome is the per-reference result of a run.
type Outcome uint8

const (
	// OutcomeFailed means the reference was skipped.
	OutcomeFailed Outcome = iota
	// OutcomeDownloaded means the file was transferred.
	OutcomeDownloaded
	// OutcomeCached means the file was already on disk with the recorded hash.
	OutcomeCached
	// OutcomeReused means the locked file was reused without resolving.
	OutcomeReused
)

// String returns the outcome as used in log lines.
func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeCached:
		return "cached"
	case OutcomeReused:
		return "reused"
	default:
		return "failed"
	}
}

// Result is the outcome for a single mod reference.
type Result struct {
	Ref      ModReference
	FileName string
	Outcome  Outcome
	Err      error
}

// Report collects the results of one run in processing order.
type Report struct {
	Results []Result
}

// Failed returns the number of skipped references.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			n++
		}
	}
	return n
}

// Succeeded returns the number of references that ended with a verified file.
func (r Report) Succeeded() int {
	return len(r.Results) - r.Failed()
}
