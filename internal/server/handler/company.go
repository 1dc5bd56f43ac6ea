package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"paperbase/internal/authz"
	"paperbase/internal/document"
	"paperbase/internal/fault"
	"paperbase/internal/platform/rbac"
	"paperbase/internal/tenant/service"
)

const maxUploadBytes = 10 << 20

// CompanyHandler serves the platform operator's company CRUD. Every operation
// goes through the rbac guard, which re-reads the operator's owner membership
// from the store; the token alone is never enough.
type CompanyHandler struct {
	lifecycle *service.Service
	guard     *rbac.Guard
	blobs     *document.BlobStore
}

// NewCompanyHandler returns a CompanyHandler.
func NewCompanyHandler(lifecycle *service.Service, guard *rbac.Guard, blobs *document.BlobStore) *CompanyHandler {
	return &CompanyHandler{lifecycle: lifecycle, guard: guard, blobs: blobs}
}

func (h *CompanyHandler) authorize(r *http.Request, action authz.Action) error {
	_, _, err := h.guard.Authorize(r.Context(), action)
	return err
}

// List handles GET /api/companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, authz.ActionCompanyList); err != nil {
		respondError(w, err)
		return
	}
	companies, err := h.lifecycle.ListCompanies(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	rows := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		row := map[string]any{
			"id":            c.ID,
			"name":          c.Name,
			"slug":          c.Slug,
			"plan":          c.Plan,
			"isActive":      c.IsActive,
			"logoUrl":       c.LogoURL,
			"memberCount":   c.MemberCount,
			"documentCount": c.DocumentCount,
			"createdAt":     c.CreatedAt,
		}
		if c.Owner != nil {
			row["owner"] = map[string]any{"id": c.Owner.ID, "name": c.Owner.Name, "email": c.Owner.Email}
		}
		rows = append(rows, row)
	}
	respondOK(w, map[string]any{"companies": rows})
}

// Create handles POST /api/companies. Accepts multipart form data with an
// optional logo file.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, authz.ActionCompanyCreate); err != nil {
		respondError(w, err)
		return
	}
	logoURL, err := h.parseCompanyForm(r)
	if err != nil {
		respondError(w, err)
		return
	}
	companyID, err := h.lifecycle.CreateCompany(r.Context(), service.CreateCompanyInput{
		Name:          r.PostFormValue("name"),
		Slug:          r.PostFormValue("slug"),
		Plan:          r.PostFormValue("plan"),
		LogoURL:       logoURL,
		OwnerName:     r.PostFormValue("ownerName"),
		OwnerEmail:    r.PostFormValue("ownerEmail"),
		OwnerPassword: r.PostFormValue("ownerPassword"),
		OwnerRole:     r.PostFormValue("role"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"companyId": companyID})
}

// Update handles PUT /api/companies/{id}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, authz.ActionCompanyUpdate); err != nil {
		respondError(w, err)
		return
	}
	logoURL, err := h.parseCompanyForm(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if logoURL == "" {
		logoURL = r.PostFormValue("logoUrl")
	}
	err = h.lifecycle.UpdateCompany(r.Context(), service.UpdateCompanyInput{
		CompanyID:     mux.Vars(r)["id"],
		Name:          r.PostFormValue("name"),
		Slug:          r.PostFormValue("slug"),
		Plan:          r.PostFormValue("plan"),
		LogoURL:       logoURL,
		OwnerName:     r.PostFormValue("ownerName"),
		OwnerEmail:    r.PostFormValue("ownerEmail"),
		OwnerPassword: r.PostFormValue("ownerPassword"),
		OwnerRole:     r.PostFormValue("role"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

// Delete handles DELETE /api/companies/{id}.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, authz.ActionCompanyDelete); err != nil {
		respondError(w, err)
		return
	}
	if err := h.lifecycle.DeleteCompany(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

// parseCompanyForm parses the (possibly multipart) company form and stores an
// uploaded logo, returning its reference. Returns "" when no logo was sent.
func (h *CompanyHandler) parseCompanyForm(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err != http.ErrNotMultipart {
			return "", fault.Validation("form", "malformed form data")
		}
		if err := r.ParseForm(); err != nil {
			return "", fault.Validation("form", "malformed form data")
		}
		return "", nil
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		return "", nil
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return h.blobs.Save(r.PostFormValue("slug"), header.Filename, data)
}
