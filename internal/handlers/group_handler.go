package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/halaqahq/halaqa/internal/middleware"
	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/service"
)

// GroupHandler serves group lifecycle and query endpoints.
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type joinGroupRequest struct {
	// PreferredSlot is optional; omit it to take the lowest free slot.
	PreferredSlot *int `json:"preferred_slot,omitempty"`
}

// CreateGroup handles POST /api/groups.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGroupInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	creatorID := middleware.GetUserID(r.Context())
	group, err := h.groupService.CreateGroup(r.Context(), creatorID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

// GetGroup handles GET /api/groups/{id}.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupService.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// ListAvailableGroups handles GET /api/groups/available.
func (h *GroupHandler) ListAvailableGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListAvailableGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if groups == nil {
		groups = []*models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// JoinGroup handles POST /api/groups/{id}/join.
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	membership, err := h.groupService.JoinGroup(r.Context(), userID, mux.Vars(r)["id"], req.PreferredSlot)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}

// GetGroupMemberships handles GET /api/groups/{id}/memberships.
func (h *GroupHandler) GetGroupMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.groupService.GetGroupMemberships(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	if memberships == nil {
		memberships = []*models.GroupMembership{}
	}
	writeJSON(w, http.StatusOK, memberships)
}

// GetMyGroups handles GET /api/me/groups.
func (h *GroupHandler) GetMyGroups(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	groups, err := h.groupService.GetUserGroups(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if groups == nil {
		groups = []*models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}
