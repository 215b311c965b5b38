package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/mwantia/gotags/pkg/log"
)

// SearchResult is a completed evaluation delivered to the session's
// apply callback. Seq identifies the dispatch that produced it.
type SearchResult struct {
	Seq   uint64
	Items []models.Item
	Err   error
}

// ResultFunc receives applied (non-stale) results.
type ResultFunc func(SearchResult)

// Session sequences search invocations. Each dispatch gets a strictly
// increasing sequence number and runs on its own goroutine; a completed
// evaluation is applied only if its sequence still equals the highest
// dispatched, otherwise it is discarded as stale. Results therefore
// need not complete in dispatch order, but a later-dispatched search
// always wins over a late-arriving earlier one. No cancellation signal
// reaches an in-flight evaluation; staleness is detected at
// result-application time.
//
// The staleness check and the apply callback run under the session
// mutex, so applies are serialized and a dispatch cannot slip between
// a passed check and its apply. The callback must not submit to the
// same session.
type Session struct {
	mu   sync.Mutex
	wait sync.WaitGroup

	evaluator Evaluator
	history   HistoryRecorder // optional
	log       log.LoggerService
	apply     ResultFunc

	latest uint64 // highest dispatched sequence number

	sortKey   SortKey
	sortOrder SortOrder
}

func NewSession(evaluator Evaluator, history HistoryRecorder, logger log.LoggerService, apply ResultFunc) *Session {
	return &Session{
		evaluator: evaluator,
		history:   history,
		log:       logger,
		apply:     apply,
		sortKey:   SortByName,
		sortOrder: SortAscending,
	}
}

// SetSort changes the ordering applied to subsequent dispatches.
func (s *Session) SetSort(key SortKey, order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = key
	s.sortOrder = order
}

// SubmitQuery parses and dispatches a structured query. Lex, parse and
// semantic errors are returned synchronously; nothing is dispatched or
// recorded for an invalid query.
func (s *Session) SubmitQuery(ctx context.Context, text string) (uint64, error) {
	pred, err := ParseQuery(text)
	if err != nil {
		return 0, err
	}

	entry := &models.SearchHistoryEntry{RawQuery: text}
	return s.dispatch(ctx, pred, entry), nil
}

// SubmitCriteria compiles and dispatches a boolean tag selection. A
// non-empty selection is the caller's precondition.
func (s *Session) SubmitCriteria(ctx context.Context, criteria SearchCriteria, tags []models.Tag) uint64 {
	pred := BuildBooleanFilter(criteria, tags)

	ids := make([]string, len(criteria.TagIDs))
	for i, id := range criteria.TagIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	entry := &models.SearchHistoryEntry{
		TagIDs:     strings.Join(ids, ","),
		Combinator: string(criteria.Combinator),
	}
	return s.dispatch(ctx, pred, entry)
}

func (s *Session) dispatch(ctx context.Context, pred Predicate, entry *models.SearchHistoryEntry) uint64 {
	s.mu.Lock()
	s.latest++
	seq := s.latest
	key, order := s.sortKey, s.sortOrder
	s.mu.Unlock()

	if s.history != nil {
		entry.ExecutedAt = time.Now().UTC()
		if err := s.history.AppendSearchHistory(ctx, entry); err != nil && s.log != nil {
			s.log.Warn("Failed to record search history: %v", err)
		}
	}

	s.wait.Add(1)
	go func() {
		defer s.wait.Done()

		items, err := s.evaluator.Evaluate(ctx, pred, key, order)

		// check and apply under one critical section, so a later
		// dispatch cannot land between a passed check and the apply
		s.mu.Lock()
		defer s.mu.Unlock()

		if seq != s.latest {
			if s.log != nil {
				s.log.Debug("Discarding stale result for search #%d", seq)
			}
			return
		}
		s.apply(SearchResult{Seq: seq, Items: items, Err: err})
	}()

	return seq
}

// Wait blocks until every dispatched evaluation has completed.
func (s *Session) Wait() {
	s.wait.Wait()
}
