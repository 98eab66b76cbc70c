package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"storefront/backend"
	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse() *models.CourseDetail {
	return &models.CourseDetail{
		ID:    "course-1",
		Title: "Test Course",
		Chapters: []models.Chapter{
			{ID: "ch2", Order: 2, Contents: []models.Content{
				{ID: "c4", Order: 1, Type: "VIDEO", URL: "https://youtu.be/four"},
				{ID: "c5", Order: 2, Type: "ARTICLE"},
			}},
			{ID: "ch1", Order: 1, Contents: []models.Content{
				{ID: "c2", Order: 2, Type: "VIDEO", URL: "https://vimeo.com/22"},
				{ID: "c1", Order: 1, Type: "VIDEO", URL: "https://youtu.be/one"},
				{ID: "c3", Order: 3, Type: "ARTICLE"},
			}},
		},
	}
}

type progressBackend struct {
	calls    int64
	fail     bool
	response map[string]interface{}
}

func (pb *progressBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&pb.calls, 1)
		if pb.fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": "progress update rejected"})
			return
		}
		resp := pb.response
		if resp == nil {
			resp = map[string]interface{}{"success": true}
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func newTestSession(t *testing.T, pb *progressBackend, enrollment *models.Enrollment) *Session {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/update-progress", pb.handler())
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	api := backend.NewClient(server.URL)
	return NewSession(api, "user-1", &backend.CourseView{Course: testCourse(), Enrollment: enrollment})
}

func TestFlattenedPlayOrder(t *testing.T) {
	s := newTestSession(t, &progressBackend{}, nil)

	var ids []string
	for _, content := range s.Contents() {
		ids = append(ids, content.ID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5"}, ids)
}

func TestInitAdoptsExplicitViewedList(t *testing.T) {
	s := newTestSession(t, &progressBackend{}, &models.Enrollment{
		Progress:         100, // ignored when the explicit list is present
		ViewedContentIDs: []string{"c2", "c5", "gone"},
	})

	state := s.State()
	assert.Equal(t, []string{"c2", "c5"}, state.ViewedContentIDs)
	assert.Equal(t, 40, state.Progress)
}

func TestInitFallsBackToImpliedPrefix(t *testing.T) {
	s := newTestSession(t, &progressBackend{}, &models.Enrollment{Progress: 60})

	state := s.State()
	assert.Equal(t, []string{"c1", "c2", "c3"}, state.ViewedContentIDs)
	assert.Equal(t, 60, state.Progress)
}

func TestMarkCompletedNoOpForViewedAndUnknown(t *testing.T) {
	pb := &progressBackend{}
	s := newTestSession(t, pb, &models.Enrollment{ViewedContentIDs: []string{"c1"}})

	before := s.State()

	state, err := s.MarkCompleted(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, before, state)

	state, err = s.MarkCompleted(context.Background(), "no-such-content")
	require.NoError(t, err)
	assert.Equal(t, before, state)

	assert.EqualValues(t, 0, atomic.LoadInt64(&pb.calls), "no-ops must not issue network calls")
}

func TestMarkCompletedOptimisticThenServerWins(t *testing.T) {
	pb := &progressBackend{response: map[string]interface{}{
		"success":          true,
		"viewedContentIds": []string{"c1", "c2", "c3", "c4"},
		"progress":         80,
		"status":           "IN_PROGRESS",
	}}
	s := newTestSession(t, pb, &models.Enrollment{ViewedContentIDs: []string{"c1"}})

	state, err := s.MarkCompleted(context.Background(), "c2")
	require.NoError(t, err)

	// Server response is authoritative post-call
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, state.ViewedContentIDs)
	assert.Equal(t, 80, state.Progress)
	assert.Equal(t, "IN_PROGRESS", state.Status)
}

func TestMarkCompletedRollsBackOnFailure(t *testing.T) {
	pb := &progressBackend{fail: true}
	s := newTestSession(t, pb, &models.Enrollment{ViewedContentIDs: []string{"c1", "c2", "c3", "c4"}})

	before := s.State()

	state, err := s.MarkCompleted(context.Background(), "c5")
	require.Error(t, err)
	assert.Equal(t, "progress update rejected", err.Error())

	// Exact pre-mutation snapshot: viewed set, percentage and status
	assert.Equal(t, before, state)
	assert.Equal(t, before, s.State())
}

func TestMarkCompletedReachesCompleted(t *testing.T) {
	pb := &progressBackend{}
	s := newTestSession(t, pb, &models.Enrollment{ViewedContentIDs: []string{"c1", "c2", "c3", "c4"}})

	state, err := s.MarkCompleted(context.Background(), "c5")
	require.NoError(t, err)
	assert.Equal(t, 100, state.Progress)
	assert.Equal(t, models.EnrollmentStatusCompleted, state.Status)
}

func TestClosedSessionDiscardsResults(t *testing.T) {
	pb := &progressBackend{}
	s := newTestSession(t, pb, nil)

	s.Close()
	_, err := s.MarkCompleted(context.Background(), "c1")
	assert.Equal(t, ErrSessionClosed, err)
	assert.EqualValues(t, 0, atomic.LoadInt64(&pb.calls))
}

func TestAdvanceMarksCurrentAndSkipsToNextVideo(t *testing.T) {
	pb := &progressBackend{}
	s := newTestSession(t, pb, nil)

	state, hasNext, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, hasNext)
	// c1 is marked as a side effect and the position lands on c2
	assert.Contains(t, state.ViewedContentIDs, "c1")
	assert.Equal(t, 1, state.CurrentIndex)

	state, hasNext, err = s.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, hasNext)
	// c3 (article) and c5 are skipped; c4 is the next playable video
	assert.Equal(t, 3, state.CurrentIndex)

	_, hasNext, err = s.Advance(context.Background())
	require.NoError(t, err)
	assert.False(t, hasNext, "no playable video after c4")
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewStore(0)
	s := newTestSession(t, &progressBackend{}, nil)

	id := store.Put(s)
	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, s, got)

	store.Remove(id)
	_, ok = store.Get(id)
	assert.False(t, ok)

	_, err := s.MarkCompleted(context.Background(), "c1")
	assert.Equal(t, ErrSessionClosed, err)
}
