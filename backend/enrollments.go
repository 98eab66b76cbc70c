package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// enrollmentRequest is the shared body of both enrollment creation routes
type enrollmentRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	OrderID  string `json:"orderId"`
}

// CreateEnrollment enrolls the user into a course. It tries the singular
// route first and falls back to the plural-named route only when the first
// call fails at the transport level; the two are treated as equivalent and
// the first success wins.
func (c *Client) CreateEnrollment(ctx context.Context, userID, courseID, orderID string) error {
	body := enrollmentRequest{UserID: userID, CourseID: courseID, OrderID: orderID}

	transport, err := c.postEnrollment(ctx, "/api/enrollment", body)
	if err == nil {
		return nil
	}
	if !transport {
		return err
	}

	_, fallbackErr := c.postEnrollment(ctx, "/api/enrollments", body)
	return fallbackErr
}

// postEnrollment posts the enrollment body to one route. The transport flag
// reports whether the failure happened before a response arrived, which is
// the only case that triggers the fallback route.
func (c *Client) postEnrollment(ctx context.Context, path string, body enrollmentRequest) (transport bool, err error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(path)
	if err != nil {
		return true, fmt.Errorf("failed to create enrollment: %v", err)
	}
	if resp.IsError() || !successFlag(resp.Body()) {
		return false, errors.New(responseMessage(resp))
	}
	return false, nil
}

// EnrollmentExists independently re-checks whether an enrollment record
// exists for the (user, course) pair. The backend signals existence loosely:
// any truthy enrollment, data, or id field counts.
func (c *Client) EnrollmentExists(ctx context.Context, userID, courseID string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"userId":   userID,
			"courseId": courseID,
		}).
		Get("/api/enrollments")
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %v", err)
	}
	if resp.IsError() {
		return false, errors.New(responseMessage(resp))
	}

	var envelope struct {
		Enrollment json.RawMessage `json:"enrollment"`
		Data       json.RawMessage `json:"data"`
		ID         json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return false, errors.New(responseMessage(resp))
	}
	return truthy(envelope.Enrollment) || truthy(envelope.Data) || truthy(envelope.ID), nil
}

// truthy mirrors the loose existence check of the upstream contract
func truthy(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
