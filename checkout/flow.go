package checkout

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"storefront/backend"
	"storefront/models"

	"github.com/google/uuid"
)

// Flow is the per-mount state of one order-confirmation page: the latest
// fetched order, which course ids already had an enrollment attempt this
// session, and the per-course enrollment check states. All of it is
// best-effort in-memory bookkeeping; a reload starts a fresh flow and may
// legitimately re-attempt.
type Flow struct {
	ID      string
	UserID  string
	OrderID string

	mu        sync.Mutex
	order     *models.Order
	attempted map[string]bool
	states    map[string]EnrollmentState
	message   string
	touched   time.Time
	closed    bool

	api *backend.Client
}

// FlowState is the client-visible snapshot of a flow
type FlowState struct {
	Order            *models.Order              `json:"order"`
	EnrollmentStates map[string]EnrollmentState `json:"enrollmentStates"`
	Message          string                     `json:"message,omitempty"`
}

// NewFlow opens a confirmation flow for an order
func NewFlow(api *backend.Client, userID, orderID string) *Flow {
	return &Flow{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderID:   orderID,
		attempted: make(map[string]bool),
		states:    make(map[string]EnrollmentState),
		touched:   time.Now(),
		api:       api,
	}
}

// Refresh refetches the order and, when it looks paid and the user id is
// resolvable, dispatches enrollment for every course line item not yet
// attempted in this session.
func (f *Flow) Refresh(ctx context.Context) (FlowState, error) {
	order, err := f.api.FetchOrder(ctx, f.OrderID)
	if err != nil {
		return f.State(), err
	}

	f.mu.Lock()
	f.order = order
	pending := f.pendingCoursesLocked(order)
	f.mu.Unlock()

	for _, courseID := range pending {
		f.attemptEnrollment(ctx, courseID)
	}
	return f.State(), nil
}

// pendingCoursesLocked marks and returns the course ids due an enrollment
// attempt. The attempted set guarantees at most one attempt per course id per
// mount even when refreshes overlap.
func (f *Flow) pendingCoursesLocked(order *models.Order) []string {
	paid := IsPaidStatus(order.Status) || IsPaidStatus(order.PaymentStatus())
	if !paid || f.UserID == "" || f.closed {
		return nil
	}

	var pending []string
	for _, item := range order.CourseItems() {
		if f.attempted[item.ItemID] {
			continue
		}
		f.attempted[item.ItemID] = true
		pending = append(pending, item.ItemID)
	}
	return pending
}

// attemptEnrollment performs one enrollment attempt followed by an
// independent existence re-check that decides the displayed state
func (f *Flow) attemptEnrollment(ctx context.Context, courseID string) {
	f.setState(courseID, EnrollmentChecking)

	// Enrollment failures are not terminal here: the record may already
	// exist, which the existence check below settles either way.
	_ = f.api.CreateEnrollment(ctx, f.UserID, courseID, f.OrderID)

	f.attemptCheck(ctx, courseID)
}

// RetryEnrollment is the manual affordance for a course whose automatic
// attempt did not produce an enrollment record
func (f *Flow) RetryEnrollment(ctx context.Context, courseID string) (FlowState, error) {
	f.mu.Lock()
	f.attempted[courseID] = true
	f.mu.Unlock()
	f.setState(courseID, EnrollmentChecking)

	if err := f.api.CreateEnrollment(ctx, f.UserID, courseID, f.OrderID); err != nil {
		f.setState(courseID, EnrollmentError)
		return f.State(), err
	}
	f.attemptCheck(ctx, courseID)
	return f.State(), nil
}

func (f *Flow) attemptCheck(ctx context.Context, courseID string) {
	exists, err := f.api.EnrollmentExists(ctx, f.UserID, courseID)
	switch {
	case err != nil:
		f.setState(courseID, EnrollmentError)
	case exists:
		f.setState(courseID, EnrollmentExists)
	default:
		f.setState(courseID, EnrollmentMissing)
	}
}

// UploadSlip submits the payment slip and, on success, refetches the order so
// every derived value re-syncs from the server instead of a local merge.
// Failure leaves flow state untouched.
func (f *Flow) UploadSlip(ctx context.Context, filename string, file io.Reader) (FlowState, error) {
	if err := f.api.UploadSlip(ctx, f.OrderID, filename, file); err != nil {
		return f.State(), err
	}

	f.mu.Lock()
	f.message = "Slip uploaded. Awaiting payment verification."
	f.mu.Unlock()

	return f.Refresh(ctx)
}

// AwaitPayment polls the order at a fixed interval until its status turns
// paid-like, then runs the enrollment dispatch. It gives up with a timeout
// error after the configured window; there is no backoff.
func (f *Flow) AwaitPayment(ctx context.Context, interval, timeout time.Duration) (FlowState, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		state, err := f.Refresh(ctx)
		if err == nil && state.Order != nil {
			if IsPaidStatus(state.Order.Status) || IsPaidStatus(state.Order.PaymentStatus()) {
				return state, nil
			}
		}
		if time.Now().After(deadline) {
			return f.State(), fmt.Errorf("timed out waiting for payment confirmation")
		}
		select {
		case <-ctx.Done():
			return f.State(), ctx.Err()
		case <-ticker.C:
		}
	}
}

// State returns the current client-visible snapshot and clears the transient
// message once read
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	states := make(map[string]EnrollmentState, len(f.states))
	for id, st := range f.states {
		states[id] = st
	}
	state := FlowState{Order: f.order, EnrollmentStates: states, Message: f.message}
	f.message = ""
	return state
}

// Attempted reports whether enrollment was already attempted for a course id
func (f *Flow) Attempted(courseID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempted[courseID]
}

// Close marks the flow torn down
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Flow) setState(courseID string, state EnrollmentState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.states[courseID] = state
}

func (f *Flow) touch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()
}

func (f *Flow) expired(ttl time.Duration, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return now.Sub(f.touched) > ttl
}
