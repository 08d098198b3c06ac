package http

import (
	"net/http"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/pkg/httputil"
)

const (
	msgTransactionNotFound = "Transaction not found"
	msgDocumentNotFound    = "Document not found"
	msgContactNotFound     = "Contact not found"
)

// GET /api/transactions/business/{businessId}?type=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	typ := domain.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	items, err := h.svc.Ledger.List(r.Context(), businessID, typ)
	if err != nil {
		h.fail(w, r, "ListTransactions", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if !decodeJSON(w, r, &req, "Invalid transaction data") {
		return
	}
	t, err := h.svc.Ledger.Create(r.Context(), &domain.Transaction{
		BusinessID:  req.BusinessID,
		Date:        *req.Date,
		Description: req.Description,
		Amount:      *req.Amount,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
	})
	if err != nil {
		h.fail(w, r, "CreateTransaction", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, t)
}

// PUT /api/transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgTransactionNotFound)
	if !ok {
		return
	}
	var req UpdateTransactionRequest
	if !decodeJSON(w, r, &req, "Invalid transaction data") {
		return
	}
	patch := domain.TransactionPatch{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	if req.Type != nil {
		typ := domain.TransactionType(*req.Type)
		patch.Type = &typ
	}
	t, err := h.svc.Ledger.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "UpdateTransaction", err, msgTransactionNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, t)
}

// DELETE /api/transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgTransactionNotFound)
	if !ok {
		return
	}
	if err := h.svc.Ledger.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "DeleteTransaction", err, msgTransactionNotFound)
		return
	}
	httputil.NoContent(w)
}

// GET /api/documents/business/{businessId}?q=
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	items, err := h.svc.Documents.List(r.Context(), businessID, r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, "ListDocuments", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/documents
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !decodeJSON(w, r, &req, "Invalid document data") {
		return
	}
	d, err := h.svc.Documents.Create(r.Context(), &domain.Document{
		BusinessID: req.BusinessID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
	})
	if err != nil {
		h.fail(w, r, "CreateDocument", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, d)
}

// PUT /api/documents/{id}
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgDocumentNotFound)
	if !ok {
		return
	}
	var req UpdateDocumentRequest
	if !decodeJSON(w, r, &req, "Invalid document data") {
		return
	}
	d, err := h.svc.Documents.Update(r.Context(), id, domain.DocumentPatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.fail(w, r, "UpdateDocument", err, msgDocumentNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, d)
}

// DELETE /api/documents/{id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgDocumentNotFound)
	if !ok {
		return
	}
	if err := h.svc.Documents.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "DeleteDocument", err, msgDocumentNotFound)
		return
	}
	httputil.NoContent(w)
}

// GET /api/contacts/business/{businessId}?status=
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	status := domain.ContactStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	items, err := h.svc.Contacts.List(r.Context(), businessID, status)
	if err != nil {
		h.fail(w, r, "ListContacts", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/contacts
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !decodeJSON(w, r, &req, "Invalid contact data") {
		return
	}
	c := &domain.Contact{
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Status:     domain.ContactStatus(req.Status),
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	created, err := h.svc.Contacts.Create(r.Context(), c)
	if err != nil {
		h.fail(w, r, "CreateContact", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, created)
}

// PUT /api/contacts/{id}
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgContactNotFound)
	if !ok {
		return
	}
	var req UpdateContactRequest
	if !decodeJSON(w, r, &req, "Invalid contact data") {
		return
	}
	patch := domain.ContactPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Value:   req.Value,
	}
	if req.Status != nil {
		st := domain.ContactStatus(*req.Status)
		patch.Status = &st
	}
	c, err := h.svc.Contacts.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "UpdateContact", err, msgContactNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, c)
}

// DELETE /api/contacts/{id}
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgContactNotFound)
	if !ok {
		return
	}
	if err := h.svc.Contacts.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "DeleteContact", err, msgContactNotFound)
		return
	}
	httputil.NoContent(w)
}

// GET /api/dashboard/{businessId}
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	d, err := h.svc.Dashboard.Get(r.Context(), businessID)
	if err != nil {
		h.fail(w, r, "Dashboard", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, d)
}
