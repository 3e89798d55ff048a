// Package store holds the whole application document in memory behind a
// single writer and flushes snapshots to the repository asynchronously.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/metrics"
	"github.com/mamadbah2/agripoulet/internal/repository"
)

const saveTimeout = 10 * time.Second

// Store owns the in-memory document. Mutations are applied synchronously and
// become visible immediately; persistence happens afterwards on a dedicated
// flusher goroutine. Pending flush requests coalesce, and a short settle
// window batches rapid consecutive mutations into one write, so overlapping
// mutations can never race each other on the persistence layer.
type Store struct {
	mu     sync.RWMutex
	doc    models.Document
	repo   repository.Repository
	logger *zap.Logger
	settle time.Duration

	saveCh    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Open loads the last saved document (or the default one when the store is
// empty or unparseable), applies one-time shape migrations and starts the
// flusher. The settle duration bounds how long a mutation may sit unflushed.
func Open(ctx context.Context, repo repository.Repository, settle time.Duration, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, found, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !found {
		logger.Info("no stored document, starting from default")
		doc = models.Default()
	}

	migrated := doc.Normalize()
	if !auth.IsHashed(doc.Settings.AdminSecretHash) {
		// Legacy documents stored the admin code in plaintext.
		hash, err := auth.HashSecret(doc.Settings.AdminSecretHash)
		if err != nil {
			return nil, fmt.Errorf("migrate admin secret: %w", err)
		}
		doc.Settings.AdminSecretHash = hash
		migrated = true
		logger.Info("migrated plaintext admin secret to bcrypt")
	}

	s := &Store{
		doc:    doc,
		repo:   repo,
		logger: logger,
		settle: settle,
		saveCh: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	if !found || migrated {
		s.requestFlush()
	}

	s.wg.Add(1)
	go s.run()

	return s, nil
}

// View gives fn read access to the current document. fn must not mutate the
// document and must not retain references past its return.
func (s *Store) View(fn func(doc *models.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.doc)
}

// Update applies fn to a working copy of the document. When fn returns an
// error the in-memory document is left untouched; on success the copy
// replaces it atomically and a flush is scheduled. This gives every mutation
// all-or-nothing semantics regardless of how far fn got before failing.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	working := s.doc.Clone()
	if err := fn(&working); err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = working
	s.mu.Unlock()

	metrics.DocumentMutationsTotal.Inc()
	s.requestFlush()
	return nil
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Close stops the flusher after one final synchronous flush.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.wg.Wait()
}

func (s *Store) requestFlush() {
	select {
	case s.saveCh <- struct{}{}:
	default: // a flush is already pending
	}
}

func (s *Store) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			s.flush()
			return
		case <-s.saveCh:
			if s.settle > 0 {
				timer := time.NewTimer(s.settle)
				select {
				case <-timer.C:
				case <-s.done:
					timer.Stop()
					s.flush()
					return
				}
			}
			// Mutations applied during the settle window ride this flush.
			select {
			case <-s.saveCh:
			default:
			}
			s.flush()
		}
	}
}

func (s *Store) flush() {
	snapshot := s.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, snapshot); err != nil {
		metrics.DocumentSavesTotal.WithLabelValues("error").Inc()
		s.logger.Error("failed to persist document", zap.Error(err))
		return
	}
	metrics.DocumentSavesTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("document persisted")
}
