// Package scheduler runs the recurring maintenance jobs of the catalog.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/locallibrary/internal/audit"
)

// pruneTimeout bounds a single prune run.
const pruneTimeout = time.Minute

// AuditPruneScheduler manages the periodic removal of expired audit events.
type AuditPruneScheduler struct {
	auditor   *audit.Service
	schedule  string
	retention time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isPruning  bool
	cancelFunc context.CancelFunc
}

// NewAuditPruneScheduler creates a new scheduler instance. The schedule
// is a standard five-field cron expression.
func NewAuditPruneScheduler(auditor *audit.Service, schedule string, retention time.Duration) *AuditPruneScheduler {
	return &AuditPruneScheduler{
		auditor:   auditor,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Cancelling ctx stops it.
func (s *AuditPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runPrune()
	})
	if err != nil {
		return fmt.Errorf("invalid prune schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit prune scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running prune to
// complete. The wait happens outside the mutex so a prune finishing
// concurrently can record its completion.
func (s *AuditPruneScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.mu.Unlock()

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	log.Printf("Audit prune scheduler: stopped")
}

// RunNow triggers an immediate prune.
func (s *AuditPruneScheduler) RunNow() {
	go s.runPrune()
}

// IsRunning returns whether the scheduler is active.
func (s *AuditPruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next prune will occur.
func (s *AuditPruneScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runPrune performs the actual prune operation
func (s *AuditPruneScheduler) runPrune() {
	s.mu.Lock()
	if s.isPruning {
		s.mu.Unlock()
		log.Printf("Audit prune: skipped (already pruning)")
		return
	}
	s.isPruning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isPruning = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := s.auditor.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		log.Printf("Audit prune: failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Audit prune: removed %d expired events", removed)
	}
}
