package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"paperbase/internal/authz"
	"paperbase/internal/document"
	documentdomain "paperbase/internal/document/domain"
	documentrepo "paperbase/internal/document/repository"
	"paperbase/internal/fault"
	"paperbase/internal/platform/rbac"
)

// DocumentHandler serves tenant document upload and listing. Storage is
// "store bytes, return a reference"; the identity core only keeps the
// metadata row that feeds the tenant-deletion guard.
type DocumentHandler struct {
	documents documentrepo.Repository
	blobs     *document.BlobStore
	guard     *rbac.Guard
}

// NewDocumentHandler returns a DocumentHandler.
func NewDocumentHandler(documents documentrepo.Repository, blobs *document.BlobStore, guard *rbac.Guard) *DocumentHandler {
	return &DocumentHandler{documents: documents, blobs: blobs, guard: guard}
}

// Upload handles POST /api/documents (multipart, field "file").
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionDocumentUpload)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, fault.Validation("file", "malformed upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, fault.Validation("file", "is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondError(w, err)
		return
	}
	ref, err := h.blobs.Save(companyID, header.Filename, data)
	if err != nil {
		respondError(w, err)
		return
	}
	doc := &documentdomain.Document{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		StoragePath: ref,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if err := h.documents.Create(r.Context(), doc); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"documentId": doc.ID, "path": ref})
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionDocumentList)
	if err != nil {
		respondError(w, err)
		return
	}
	docs, err := h.documents.ListByCompany(r.Context(), companyID)
	if err != nil {
		respondError(w, err)
		return
	}
	rows := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, map[string]any{
			"id":          d.ID,
			"name":        d.Name,
			"contentType": d.ContentType,
			"path":        d.StoragePath,
			"size":        d.Size,
			"createdAt":   d.CreatedAt,
		})
	}
	respondOK(w, map[string]any{"documents": rows})
}
