package api

import (
	"net/http"
	"strings"

	"github.com/avasquez/tally/internal/middleware"
	"github.com/avasquez/tally/internal/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

type addMemberRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
}

// groupResponse wraps a group so callers can distinguish "group is gone"
// (null) from an error body.
type groupResponse struct {
	Group *models.Group `json:"group"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	groups, err := s.groups.ListGroupsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Group{"groups": groups})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "group name is required")
		return
	}

	creator := models.GroupMember{
		UserID:      middleware.GetUserID(r.Context()),
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
	}
	if creator.DisplayName == "" {
		creator.DisplayName = middleware.GetEmail(r.Context())
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Description, creator)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	writeJSON(w, http.StatusCreated, groupResponse{Group: group})
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get group")
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	writeJSON(w, http.StatusOK, groupResponse{Group: group})
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.groups.DeleteGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete group")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	group, err := s.groups.AddMember(r.Context(), r.PathValue("id"), models.GroupMember{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add member")
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	// Duplicate adds land here too, with the unchanged group.
	writeJSON(w, http.StatusOK, groupResponse{Group: group})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("userId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove member")
		return
	}

	// A nil group means it no longer exists: either it was unknown, or
	// removing the last member cascaded its deletion.
	writeJSON(w, http.StatusOK, groupResponse{Group: group})
}
