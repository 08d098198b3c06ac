package http

import (
	"net/http"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/service"
	"github.com/cwrk-planet/bizos/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

const (
	msgGroupNotFound      = "Chat group not found"
	msgInvitationNotFound = "Invitation not found"
	msgMessageNotFound    = "Message not found"

	HeaderNextCursor = "X-Next-Cursor"
)

// GET /api/chat-groups/business/{businessId}?userId=
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	if userID := strings.TrimSpace(r.URL.Query().Get("userId")); userID != "" {
		if !isUUID(userID) {
			httputil.Error(w, http.StatusBadRequest, "Invalid userId")
			return
		}
		items, err := h.svc.Groups.ListForMember(r.Context(), businessID, userID)
		if err != nil {
			h.fail(w, r, "ListGroups", err, "")
			return
		}
		httputil.JSON(w, http.StatusOK, items)
		return
	}

	items, err := h.svc.Groups.ListByBusiness(r.Context(), businessID)
	if err != nil {
		h.fail(w, r, "ListGroups", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// GET /api/chat-groups/{id}
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgGroupNotFound)
	if !ok {
		return
	}
	g, err := h.svc.Groups.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "GetGroup", err, msgGroupNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, g)
}

// POST /api/chat-groups
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !decodeJSON(w, r, &req, "Invalid chat group data") {
		return
	}
	creator, ok := actingUser(w, r, req.CreatedBy)
	if !ok {
		return
	}
	g, err := h.svc.Groups.Create(r.Context(), &domain.ChatGroup{
		Name:        req.Name,
		Description: req.Description,
		BusinessID:  &req.BusinessID,
		CreatedBy:   &creator,
	})
	if err != nil {
		h.fail(w, r, "CreateGroup", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, g)
}

// PUT /api/chat-groups/{id}
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgGroupNotFound)
	if !ok {
		return
	}
	var req UpdateGroupRequest
	if !decodeJSON(w, r, &req, "Invalid chat group data") {
		return
	}
	g, err := h.svc.Groups.Update(r.Context(), id, domain.GroupPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, r, "UpdateGroup", err, msgGroupNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, g)
}

// GET /api/group-members/{groupId}
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", "")
	if !ok {
		return
	}
	items, err := h.svc.Members.List(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "ListMembers", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/group-members
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if !decodeJSON(w, r, &req, "Invalid group member data") {
		return
	}
	m, err := h.svc.Members.Add(r.Context(), req.GroupID, req.UserID, req.IsAdmin)
	if err != nil {
		h.fail(w, r, "AddMember", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, m)
}

// PUT /api/group-members/{groupId}/{userId}
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", msgNotMember)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", msgNotMember)
	if !ok {
		return
	}
	var req UpdateMemberRequest
	if !decodeJSON(w, r, &req, "Invalid group member data") {
		return
	}
	m, err := h.svc.Members.SetAdmin(r.Context(), groupID, userID, *req.IsAdmin)
	if err != nil {
		h.fail(w, r, "UpdateMember", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

// DELETE /api/group-members/{groupId}/{userId}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", msgNotMember)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", msgNotMember)
	if !ok {
		return
	}
	if err := h.svc.Members.Remove(r.Context(), groupID, userID); err != nil {
		h.fail(w, r, "RemoveMember", err, "")
		return
	}
	httputil.NoContent(w)
}

// POST /api/group-invitations
func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !decodeJSON(w, r, &req, "Invalid invitation data") {
		return
	}
	creator, ok := actingUser(w, r, req.CreatedBy)
	if !ok {
		return
	}
	inv, err := h.svc.Invitations.Create(r.Context(), service.CreateInvitationInput{
		GroupID:       req.GroupID,
		CreatedBy:     creator,
		ExpiresAt:     req.ExpiresAt,
		ExpiresInDays: req.ExpiresInDays,
		MaxUses:       req.MaxUses,
	})
	if err != nil {
		h.fail(w, r, "CreateInvitation", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, inv)
}

// GET /api/group-invitations/code/{code}
func (h *Handler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Invitations.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.fail(w, r, "GetInvitation", err, msgInvitationNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, inv)
}

// GET /api/group-invitations/group/{groupId}
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", "")
	if !ok {
		return
	}
	items, err := h.svc.Invitations.ListByGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "ListInvitations", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// PUT /api/group-invitations/{id}
func (h *Handler) UpdateInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgInvitationNotFound)
	if !ok {
		return
	}
	var req UpdateInvitationRequest
	if !decodeJSON(w, r, &req, "Invalid invitation data") {
		return
	}
	inv, err := h.svc.Invitations.Update(r.Context(), id, domain.InvitationPatch{
		IsActive:  req.IsActive,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		h.fail(w, r, "UpdateInvitation", err, msgInvitationNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, inv)
}

// POST /api/group-invitations/code/{code}/accept
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req AcceptInvitationRequest
	if !decodeJSON(w, r, &req, "Invalid invitation data") {
		return
	}
	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}
	res, err := h.svc.Invitations.Accept(r.Context(), chi.URLParam(r, "code"), userID)
	if err != nil {
		h.fail(w, r, "AcceptInvitation", err, msgInvitationNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

// GET /api/chat-messages/{groupId}?limit=&before=
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", "")
	if !ok {
		return
	}
	items, next, err := h.svc.Chat.History(r.Context(),
		groupID,
		r.URL.Query().Get("before"),
		queryInt(r, "limit", 0),
	)
	if err != nil {
		h.fail(w, r, "ListMessages", err, "")
		return
	}
	if next != "" {
		w.Header().Set(HeaderNextCursor, next)
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/chat-messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !decodeJSON(w, r, &req, "Invalid message data") {
		return
	}
	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}
	m, err := h.svc.Chat.Send(r.Context(), &domain.ChatMessage{
		GroupID:     req.GroupID,
		UserID:      userID,
		Content:     req.Content,
		MessageType: req.MessageType,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		ReplyTo:     req.ReplyTo,
	})
	if err != nil {
		h.fail(w, r, "SendMessage", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, m)
}

// PUT /api/chat-messages/{id}
func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgMessageNotFound)
	if !ok {
		return
	}
	var req EditMessageRequest
	if !decodeJSON(w, r, &req, "Invalid message data") {
		return
	}
	m, err := h.svc.Chat.Edit(r.Context(), id, req.Content)
	if err != nil {
		h.fail(w, r, "EditMessage", err, msgMessageNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

// POST /api/typing-indicators
func (h *Handler) Typing(w http.ResponseWriter, r *http.Request) {
	var req TypingRequest
	if !decodeJSON(w, r, &req, "Invalid typing indicator data") {
		return
	}
	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}
	ind, err := h.svc.Typing.Touch(r.Context(), req.GroupID, userID)
	if err != nil {
		h.fail(w, r, "Typing", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, ind)
}

// GET /api/typing-indicators/{groupId}
func (h *Handler) ListTyping(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", "")
	if !ok {
		return
	}
	items, err := h.svc.Typing.Active(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "ListTyping", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// DELETE /api/typing-indicators/{groupId}/{userId}
func (h *Handler) ClearTyping(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupId", "")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", "")
	if !ok {
		return
	}
	if err := h.svc.Typing.Clear(r.Context(), groupID, userID); err != nil {
		h.fail(w, r, "ClearTyping", err, "")
		return
	}
	httputil.NoContent(w)
}
