package service

import (
	"context"
	"sync"
	"time"

	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/repository"
	"github.com/lshigami/Gradebook/internal/seqguard"
	"github.com/rs/zerolog/log"
)

const (
	fetchKey    = "fetch"
	mutationKey = "mutation"
)

// NotificationSnapshot is a copy of the store's state; mutating it has no effect on the store.
type NotificationSnapshot struct {
	Items       []model.Notification
	UnreadCount int
}

// NotificationStore caches one dashboard session's notifications. Invariant:
// unreadCount equals the number of cached items with IsRead == false after every
// operation. Mutations call the backend first and touch the cache only on success.
// A backend-confirmed mutation is always applied; it never waits on later calls.
type NotificationStore struct {
	repo  repository.NotificationRepository
	limit int
	guard *seqguard.Guard
	now   func() time.Time

	mu              sync.Mutex
	items           []model.Notification
	unreadCount     int
	lastMutationSeq uint64
	loaded          bool
}

func NewNotificationStore(repo repository.NotificationRepository, limit int) *NotificationStore {
	return &NotificationStore{
		repo:  repo,
		limit: limit,
		guard: seqguard.New(),
		now:   time.Now,
	}
}

// Fetch replaces the cache wholesale and recomputes the unread count from scratch.
// The response is dropped if a newer fetch was issued or a mutation was applied
// after this fetch started.
func (s *NotificationStore) Fetch(ctx context.Context) error {
	seq := s.guard.Issue(fetchKey)
	items, err := s.repo.FindRecent(ctx, s.limit)
	if err != nil {
		log.Error().Err(err).Int("limit", s.limit).Msg("NotificationStore: Fetch failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.IsLatest(fetchKey, seq) || s.lastMutationSeq > seq {
		log.Debug().Uint64("seq", seq).Msg("NotificationStore: Discarding superseded fetch")
		return nil
	}
	s.items = append([]model.Notification(nil), items...)
	s.unreadCount = 0
	for _, n := range s.items {
		if !n.IsRead {
			s.unreadCount++
		}
	}
	s.loaded = true
	return nil
}

// MarkAsRead marks one notification read. Unknown or already-read ids change nothing.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id uint) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		log.Error().Err(err).Uint("notificationID", id).Msg("NotificationStore: Mark as read failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markMutated()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if !s.items[i].IsRead {
			readAt := s.now()
			s.items[i].IsRead = true
			s.items[i].ReadAt = &readAt
			s.decrementUnread()
		}
		return
	}
}

// MarkAllAsRead marks every cached notification read.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) {
	if err := s.repo.MarkAllRead(ctx); err != nil {
		log.Error().Err(err).Msg("NotificationStore: Mark all as read failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markMutated()
	readAt := s.now()
	for i := range s.items {
		if !s.items[i].IsRead {
			s.items[i].IsRead = true
			s.items[i].ReadAt = &readAt
		}
	}
	s.unreadCount = 0
}

// Delete removes a notification. The unread count drops only if the removed item was unread.
func (s *NotificationStore) Delete(ctx context.Context, id uint) {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("notificationID", id).Msg("NotificationStore: Delete failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markMutated()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		wasUnread := !s.items[i].IsRead
		s.items = append(s.items[:i], s.items[i+1:]...)
		if wasUnread {
			s.decrementUnread()
		}
		return
	}
}

// Reset empties the store, e.g. on logout. Fetches still in flight are dropped.
func (s *NotificationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guard.Reset()
	s.items = nil
	s.unreadCount = 0
	s.lastMutationSeq = s.guard.Last()
	s.loaded = false
}

// Loaded reports whether a fetch has been applied since creation or the last Reset.
func (s *NotificationStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *NotificationStore) Snapshot() NotificationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NotificationSnapshot{
		Items:       append([]model.Notification(nil), s.items...),
		UnreadCount: s.unreadCount,
	}
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

// markMutated records that the cache changed, so any fetch issued before now is
// stale. Callers hold s.mu.
func (s *NotificationStore) markMutated() {
	s.lastMutationSeq = s.guard.Issue(mutationKey)
}

func (s *NotificationStore) decrementUnread() {
	if s.unreadCount > 0 {
		s.unreadCount--
	}
}

// NotificationStoreRegistry owns one NotificationStore per dashboard session.
// Sessions unused for longer than idleTTL are reset and forgotten; a zero TTL
// keeps them until Drop.
type NotificationStoreRegistry struct {
	repo    repository.NotificationRepository
	limit   int
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	stores    map[string]*sessionStore
	lastSweep time.Time
}

type sessionStore struct {
	store    *NotificationStore
	lastUsed time.Time
}

func NewNotificationStoreRegistry(repo repository.NotificationRepository, limit int, idleTTL time.Duration) *NotificationStoreRegistry {
	return &NotificationStoreRegistry{
		repo:    repo,
		limit:   limit,
		idleTTL: idleTTL,
		now:     time.Now,
		stores:  make(map[string]*sessionStore),
	}
}

// For returns the session's store, creating an empty one on first use.
func (r *NotificationStoreRegistry) For(sessionKey string) *NotificationStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweep(now)
	entry, ok := r.stores[sessionKey]
	if !ok {
		entry = &sessionStore{store: NewNotificationStore(r.repo, r.limit)}
		r.stores[sessionKey] = entry
	}
	entry.lastUsed = now
	return entry.store
}

// Drop resets and forgets the session's store.
func (r *NotificationStoreRegistry) Drop(sessionKey string) {
	r.mu.Lock()
	entry, ok := r.stores[sessionKey]
	delete(r.stores, sessionKey)
	r.mu.Unlock()
	if ok {
		entry.store.Reset()
	}
}

func (r *NotificationStoreRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// sweep evicts idle sessions, at most once per quarter TTL. Callers hold r.mu.
func (r *NotificationStoreRegistry) sweep(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < r.idleTTL/4 {
		return
	}
	r.lastSweep = now
	for key, entry := range r.stores {
		if now.Sub(entry.lastUsed) > r.idleTTL {
			delete(r.stores, key)
			entry.store.Reset()
			log.Debug().Msg("NotificationStoreRegistry: Evicted idle session")
		}
	}
}
