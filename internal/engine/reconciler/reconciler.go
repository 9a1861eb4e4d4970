// Package reconciler turns mod references into a lock file of verified downloads.
package reconciler

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Options configures a reconcile run.
type Options struct {
	// Update skips reuse of locked files and resolves every reference again.
	Update bool
	// Jobs is the number of references processed at once. Values below 1 mean 1.
	Jobs int
}

// Reconciler drives resolve, fetch and verify for each mod reference.
type Reconciler struct {
	resolver ports.Resolver
	store    ports.ContentStore
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a new Reconciler with the given dependencies.
func New(
	resolver ports.Resolver,
	store ports.ContentStore,
	logger ports.Logger,
	tracer ports.Tracer,
) *Reconciler {
	return &Reconciler{
		resolver: resolver,
		store:    store,
		logger:   logger,
		tracer:   tracer,
	}
}

// Reconcile brings the download directory in line with refs and returns the next lock file.
//
// The returned lock file's mods table holds exactly the references that ended with a
// verified file. Its files table starts from prior and only loses entries whose
// re-fetched content contradicted the recorded hash. A failing reference is logged and
// skipped; it never stops the others.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	prior *domain.Lockfile,
	refs []domain.ModReference,
	constraint domain.VersionConstraint,
	opts Options,
) (*domain.Lockfile, domain.Report) {
	if prior == nil {
		prior = domain.NewLockfile()
	}
	refs = domain.Unique(refs)
	l := newLedger(prior.Next())

	r.tracer.EmitPlan(ctx, refNames(refs))

	results := make([]domain.Result, len(refs))
	forEach(len(refs), opts.Jobs, func(i int) {
		results[i] = r.reconcileOne(ctx, prior, l, refs[i], constraint, opts.Update)
	})

	return l.next, domain.Report{Results: results}
}

// ReconcileFromLedger fetches and verifies every file lock records, without resolving
// anything and without changing lock.
func (r *Reconciler) ReconcileFromLedger(ctx context.Context, lock *domain.Lockfile, jobs int) domain.Report {
	entries := lock.Entries()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Ref.String()
	}
	r.tracer.EmitPlan(ctx, names)

	results := make([]domain.Result, len(entries))
	forEach(len(entries), jobs, func(i int) {
		results[i] = r.restoreOne(ctx, lock, entries[i])
	})

	return domain.Report{Results: results}
}

func (r *Reconciler) reconcileOne(
	ctx context.Context,
	prior *domain.Lockfile,
	l *ledger,
	ref domain.ModReference,
	constraint domain.VersionConstraint,
	update bool,
) domain.Result {
	ctx, span := r.tracer.Start(ctx, ref.String(), ports.WithAttribute("mod", ref.String()))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return r.fail(span, ref, "", err)
	}

	req := domain.FetchRequest{Origin: ref}
	locked, reuse := prior.Lookup(ref)
	reuse = reuse && !update

	switch {
	case reuse:
		req.URL, req.FileName = locked.URL, locked.Name
	case r.resolver.Matches(ref):
		url, err := r.resolver.Resolve(ctx, ref, constraint)
		if err != nil {
			return r.fail(span, ref, "", err)
		}
		req.URL = url
	default:
		req.URL = ref.String()
	}

	res, err := r.store.FetchAndVerify(ctx, req, l)
	if err != nil {
		if errors.Is(err, domain.ErrHashMismatch) && res.File.Name != "" {
			l.forget(res.File.Name)
		}
		return r.fail(span, ref, res.File.Name, err)
	}

	l.record(ref, res.File)

	outcome := domain.OutcomeDownloaded
	switch {
	case res.Cached && reuse:
		outcome = domain.OutcomeReused
	case res.Cached:
		outcome = domain.OutcomeCached
	}

	return r.succeed(span, ref, res.File.Name, outcome, "locked")
}

func (r *Reconciler) restoreOne(ctx context.Context, lock *domain.Lockfile, entry domain.LockEntry) domain.Result {
	ctx, span := r.tracer.Start(ctx, entry.Ref.String(), ports.WithAttribute("mod", entry.Ref.String()))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return r.fail(span, entry.Ref, entry.File.Name, err)
	}

	res, err := r.store.FetchAndVerify(ctx, domain.FetchRequest{
		Origin:   entry.Ref,
		URL:      entry.File.URL,
		FileName: entry.File.Name,
	}, lock)
	if err != nil {
		return r.fail(span, entry.Ref, entry.File.Name, err)
	}

	outcome := domain.OutcomeDownloaded
	if res.Cached {
		outcome = domain.OutcomeCached
	}
	return r.succeed(span, entry.Ref, res.File.Name, outcome, "restored")
}

func (r *Reconciler) succeed(span ports.Span, ref domain.ModReference, name string, outcome domain.Outcome, verb string) domain.Result {
	span.SetAttribute("file", name)
	span.SetAttribute("outcome", outcome.String())
	r.logger.Info(fmt.Sprintf("%s %s -> %s (%s)", verb, ref, name, outcome))
	return domain.Result{Ref: ref, FileName: name, Outcome: outcome}
}

func (r *Reconciler) fail(span ports.Span, ref domain.ModReference, name string, err error) domain.Result {
	span.RecordError(err)
	r.logger.Warn(fmt.Sprintf("skipped %s: %v", ref, err))
	return domain.Result{Ref: ref, FileName: name, Outcome: domain.OutcomeFailed, Err: err}
}

// forEach runs fn for every index with at most jobs calls in flight.
// With one job the indexes run strictly in order.
func forEach(n, jobs int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func refNames(refs []domain.ModReference) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.String()
	}
	return names
}
