package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/models"
)

// CourseView bundles the course record with the caller's enrollment, the way
// the my-courses route serves them
type CourseView struct {
	Course     *models.CourseDetail `json:"course"`
	Enrollment *models.Enrollment   `json:"enrollment"`
}

// FetchCourse loads a course plus the user's enrollment record for the player
func (c *Client) FetchCourse(ctx context.Context, courseID, userID string) (*CourseView, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		Get("/api/my-courses/course/" + courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course: %v", err)
	}
	if resp.IsError() {
		return nil, errors.New(responseMessage(resp))
	}

	var envelope struct {
		Success    *bool                `json:"success"`
		Course     *models.CourseDetail `json:"course"`
		Enrollment *models.Enrollment   `json:"enrollment"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, errors.New(responseMessage(resp))
	}
	if envelope.Success != nil && !*envelope.Success {
		return nil, errors.New(responseMessage(resp))
	}
	if envelope.Course == nil {
		return nil, errors.New("course not found")
	}
	return &CourseView{Course: envelope.Course, Enrollment: envelope.Enrollment}, nil
}

// ProgressResult is what the update-progress route returns. The server is
// authoritative post-call: whatever it sends back replaces the optimistic
// local values.
type ProgressResult struct {
	ViewedContentIDs []string `json:"viewedContentIds"`
	Progress         *int     `json:"progress"`
	Status           string   `json:"status"`
}

// UpdateProgress records one viewed content item against the enrollment
func (c *Client) UpdateProgress(ctx context.Context, userID, courseID, contentID string) (*ProgressResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"userId":    userID,
			"courseId":  courseID,
			"contentId": contentID,
		}).
		Post("/api/update-progress")
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %v", err)
	}
	if resp.IsError() || !successFlag(resp.Body()) {
		return nil, errors.New(responseMessage(resp))
	}

	var result ProgressResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, errors.New(responseMessage(resp))
	}
	return &result, nil
}
