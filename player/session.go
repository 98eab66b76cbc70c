package player

import (
	"context"
	"sync"
	"time"

	"storefront/backend"
	"storefront/models"

	"github.com/google/uuid"
)

// Session holds the per-mount player state for one (user, course) pair: the
// flattened play order, the viewed-content set, and the derived percentage.
// It is the server-side stand-in for what the page would keep in component
// state, and it survives exactly as long as the page is mounted.
type Session struct {
	ID       string
	UserID   string
	Course   *models.CourseDetail
	contents []models.Content
	position map[string]int

	mu       sync.Mutex
	viewed   map[string]bool
	progress int
	status   string
	current  int
	closed   bool
	touched  time.Time

	api *backend.Client
}

// State is the client-visible snapshot of a session
type State struct {
	ViewedContentIDs []string `json:"viewedContentIds"`
	Progress         int      `json:"progress"`
	Status           string   `json:"status"`
	CurrentIndex     int      `json:"currentIndex"`
}

type snapshot struct {
	viewed   map[string]bool
	progress int
	status   string
}

// NewSession builds a session from a fetched course view, applying the
// viewed-set initialization policy:
//  1. an explicit viewedContentIds list on the enrollment is authoritative
//     (filtered to ids that still exist in the play order);
//  2. otherwise the stored percentage is back-converted into an implied
//     prefix of the play order (legacy records without the explicit list).
func NewSession(api *backend.Client, userID string, view *backend.CourseView) *Session {
	contents := view.Course.FlattenContents()
	position := make(map[string]int, len(contents))
	for i, content := range contents {
		position[content.ID] = i
	}

	s := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Course:   view.Course,
		contents: contents,
		position: position,
		viewed:   make(map[string]bool),
		status:   models.EnrollmentStatusEnrolled,
		touched:  time.Now(),
		api:      api,
	}

	if e := view.Enrollment; e != nil {
		if e.Status != "" {
			s.status = e.Status
		}
		if e.ViewedContentIDs != nil {
			for _, id := range e.ViewedContentIDs {
				if _, ok := position[id]; ok {
					// stale ids from removed content are silently dropped
					s.viewed[id] = true
				}
			}
		} else {
			for _, id := range ImpliedViewedPrefix(e.Progress, contents) {
				s.viewed[id] = true
			}
		}
		s.progress = PercentViewed(len(s.viewed), len(contents))
	}
	return s
}

// Contents returns the flattened play order
func (s *Session) Contents() []models.Content {
	return s.contents
}

// State returns the current client-visible snapshot
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// MarkCompleted records one content item as viewed. Already-viewed or unknown
// ids are no-ops with no network call. Otherwise the viewed set, percentage
// and status are updated optimistically, the update call is issued, and the
// result either replaces the optimistic values (server wins) or the exact
// pre-mutation snapshot is restored.
func (s *Session) MarkCompleted(ctx context.Context, contentID string) (State, error) {
	s.mu.Lock()
	if s.closed {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, ErrSessionClosed
	}
	if _, ok := s.position[contentID]; !ok || s.viewed[contentID] {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, nil
	}

	prev := s.snapshotLocked()
	s.viewed[contentID] = true
	s.progress = PercentViewed(len(s.viewed), len(s.contents))
	if s.progress >= 100 {
		s.status = models.EnrollmentStatusCompleted
	}
	userID, courseID := s.UserID, s.Course.ID
	s.mu.Unlock()

	// Lock released while the call is in flight; updates for different
	// content ids may interleave and reconcile independently.
	result, err := s.api.UpdateProgress(ctx, userID, courseID, contentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// unmounted while in flight; nothing left to reconcile
		return s.stateLocked(), ErrSessionClosed
	}
	if err != nil {
		s.restoreLocked(prev)
		return s.stateLocked(), err
	}

	if result.ViewedContentIDs != nil {
		s.viewed = make(map[string]bool, len(result.ViewedContentIDs))
		for _, id := range result.ViewedContentIDs {
			if _, ok := s.position[id]; ok {
				s.viewed[id] = true
			}
		}
	}
	if result.Progress != nil {
		s.progress = *result.Progress
	}
	if result.Status != "" {
		s.status = result.Status
	}
	return s.stateLocked(), nil
}

// Advance implements "play next": it marks the current item completed as a
// side effect, then moves to the nearest subsequent playable video. Returns
// the new state and whether a next item existed.
func (s *Session) Advance(ctx context.Context) (State, bool, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	next := NextPlayable(s.contents, current)

	var state State
	var err error
	if current >= 0 && current < len(s.contents) {
		state, err = s.MarkCompleted(ctx, s.contents[current].ID)
	} else {
		state = s.State()
	}
	if next < 0 {
		return state, false, err
	}

	s.mu.Lock()
	if !s.closed {
		s.current = next
	}
	state = s.stateLocked()
	s.mu.Unlock()
	return state, true, err
}

// Goto moves the play position to the given content id if it exists
func (s *Session) Goto(contentID string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.position[contentID]
	if ok && !s.closed {
		s.current = pos
	}
	return s.stateLocked(), ok
}

// Close marks the session torn down; async results arriving later are
// discarded instead of mutating dead state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touched) > ttl
}

func (s *Session) stateLocked() State {
	return State{
		ViewedContentIDs: s.viewedInOrderLocked(),
		Progress:         s.progress,
		Status:           s.status,
		CurrentIndex:     s.current,
	}
}

// viewedInOrderLocked lists viewed ids restricted to valid ids, in play order
func (s *Session) viewedInOrderLocked() []string {
	ids := make([]string, 0, len(s.viewed))
	for _, content := range s.contents {
		if s.viewed[content.ID] {
			ids = append(ids, content.ID)
		}
	}
	return ids
}

func (s *Session) snapshotLocked() snapshot {
	viewed := make(map[string]bool, len(s.viewed))
	for id := range s.viewed {
		viewed[id] = true
	}
	return snapshot{viewed: viewed, progress: s.progress, status: s.status}
}

func (s *Session) restoreLocked(prev snapshot) {
	s.viewed = prev.viewed
	s.progress = prev.progress
	s.status = prev.status
}
