package updater

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hokuto/jiten/internal/dict"
)

// Store is the slice of the local store the pipeline needs
type Store interface {
	Version(kind dict.DataSetKind) (dict.VersionInfo, bool)
	ReplaceKanji(entries []dict.KanjiEntry, version dict.VersionInfo) error
	LastCheck() (time.Time, bool)
	SaveLastCheck(t time.Time) error
}

// Pipeline owns the update lifecycle. It runs at most one check/download at
// a time and streams State snapshots on States(); the UI only ever reads
// them. Request, Cancel and Close are safe for concurrent use.
type Pipeline struct {
	client  *http.Client
	store   Store
	logger  *slog.Logger
	baseURL string
	now     func() time.Time

	states chan State

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	closed  bool
}

// New creates a pipeline for the given snapshot base URL
func New(st Store, baseURL string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		client:  &http.Client{Timeout: downloadTimeout},
		store:   st,
		logger:  logger,
		baseURL: baseURL,
		now:     time.Now,
		states:  make(chan State, 16),
	}
}

// States returns the stream of lifecycle snapshots
func (p *Pipeline) States() <-chan State {
	return p.states
}

// Request starts a check-and-update run for the given gloss language.
// A run already in flight wins; the request is dropped.
func (p *Pipeline) Request(lang string) {
	p.mu.Lock()
	if p.running || p.closed {
		p.mu.Unlock()
		p.logger.Debug("update request dropped", "lang", lang, "reason", dict.ErrUpdateInProgress)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.running = false
			p.cancel = nil
			p.mu.Unlock()
			cancel()
		}()
		p.run(ctx, lang)
	}()
}

// Cancel aborts the in-flight run, if any. The pipeline settles back to
// Idle; the database-apply phase ignores cancellation once started.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close cancels any in-flight run and stops accepting requests
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (p *Pipeline) emit(s State) {
	p.states <- s
}

// idle builds the Idle snapshot from the persisted last-check timestamp
func (p *Pipeline) idle() Idle {
	if t, ok := p.store.LastCheck(); ok {
		return Idle{LastCheck: &t}
	}
	return Idle{}
}

func (p *Pipeline) run(ctx context.Context, lang string) {
	p.emit(Checking{})
	p.logger.Info("checking for updates", "lang", lang)

	rawURL, err := manifestURL(p.baseURL, lang, dict.DataSetKanji)
	if err != nil {
		p.emit(Errored{Err: err})
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, manifestTimeout)
	manifest, err := fetchManifest(checkCtx, p.client, rawURL)
	cancel()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.logger.Info("update check cancelled")
			p.emit(p.idle())
			return
		}
		p.logger.Error("update check failed", "error", err)
		p.emit(Errored{Err: err})
		return
	}

	// Same version in the same language means nothing to do
	if installed, ok := p.store.Version(dict.DataSetKanji); ok &&
		installed.VersionTriple == manifest.Triple() && installed.Lang == manifest.Lang {
		now := p.now()
		if err := p.store.SaveLastCheck(now); err != nil {
			p.logger.Warn("failed to persist last check", "error", err)
		}
		p.logger.Info("database up to date", "version", installed.VersionTriple)
		p.emit(Idle{LastCheck: &now})
		return
	}

	triple := manifest.Triple()
	p.emit(Downloading{Version: triple, Progress: 0})
	p.logger.Info("downloading snapshot", "version", triple, "lang", manifest.Lang)

	// Forward download progress in whole-percent steps to keep the
	// snapshot stream bounded.
	lastStep := -1
	progress := func(frac float64) {
		step := int(frac * 100)
		if step > lastStep {
			lastStep = step
			p.emit(Downloading{Version: triple, Progress: frac})
		}
	}

	entries, err := downloadSnapshot(ctx, p.client, rawURL, manifest, progress)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.logger.Info("download cancelled", "version", triple)
			p.emit(p.idle())
			return
		}
		p.logger.Error("download failed", "error", err)
		p.emit(Errored{Err: err})
		return
	}

	// Apply phase: the destructive bucket swap runs to completion even if
	// a cancel arrives now.
	p.emit(UpdatingDB{Version: triple})
	p.logger.Info("applying snapshot", "version", triple, "records", len(entries))

	if err := p.store.ReplaceKanji(entries, manifest.VersionInfo()); err != nil {
		p.logger.Error("apply failed", "error", err)
		p.emit(Errored{Err: err})
		return
	}

	now := p.now()
	if err := p.store.SaveLastCheck(now); err != nil {
		p.logger.Warn("failed to persist last check", "error", err)
	}
	p.logger.Info("update complete", "version", triple, "lang", manifest.Lang)
	p.emit(Idle{LastCheck: &now})
}
