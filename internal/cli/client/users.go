package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// RegisterStudent submits a member registration. With a profile photo the
// request is multipart (one JSON "data" field plus the photo part); without
// one it is a plain JSON request.
func (c *Client) RegisterStudent(ctx context.Context, form *models.StudentRegistration, photo *FilePart) (*Envelope, error) {
	const fallback = "Registration failed"

	if photo == nil {
		return c.doJSON(ctx, http.MethodPost, "/api/users/create-student", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/users/create-student", form, []FilePart{*photo}, fallback)
}

// Directory returns the approved membership (member-level access)
func (c *Client) Directory(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/members", nil, "Failed to list member directory")
}

// ListMembers returns all members, including soft-deleted ones when asked
func (c *Client) ListMembers(ctx context.Context, includeDeleted bool) (*Envelope, error) {
	path := "/api/users"
	if includeDeleted {
		path += "?includeDeleted=true"
	}
	return c.doJSON(ctx, http.MethodGet, path, nil, "Failed to list members")
}

// UpdateMemberStatusRequest is the approval-status mutation body
type UpdateMemberStatusRequest struct {
	ApprovalStatus models.ApprovalStatus `json:"approvalStatus"`
}

// UpdateMemberStatus sets a member's approval status
func (c *Client) UpdateMemberStatus(ctx context.Context, userID string, status models.ApprovalStatus) (*Envelope, error) {
	body := UpdateMemberStatusRequest{ApprovalStatus: status}
	path := fmt.Sprintf("/api/users/%s/status", userID)
	return c.doJSON(ctx, http.MethodPatch, path, body, "Failed to update member status")
}

// UpdateMemberRoleRequest is the role mutation body
type UpdateMemberRoleRequest struct {
	Role models.Role `json:"role"`
}

// UpdateMemberRole sets a member's role
func (c *Client) UpdateMemberRole(ctx context.Context, userID string, role models.Role) (*Envelope, error) {
	body := UpdateMemberRoleRequest{Role: role}
	path := fmt.Sprintf("/api/users/%s/role", userID)
	return c.doJSON(ctx, http.MethodPatch, path, body, "Failed to update member role")
}

// DeleteMember soft-deletes a member (the record is flagged, not removed)
func (c *Client) DeleteMember(ctx context.Context, userID string) (*Envelope, error) {
	path := fmt.Sprintf("/api/users/%s", userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, "Failed to delete member")
}

// RestoreMember clears a member's soft-delete flag
func (c *Client) RestoreMember(ctx context.Context, userID string) (*Envelope, error) {
	path := fmt.Sprintf("/api/users/%s/restore", userID)
	return c.doJSON(ctx, http.MethodPatch, path, nil, "Failed to restore member")
}
