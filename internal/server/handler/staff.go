package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"paperbase/internal/authz"
	"paperbase/internal/platform/rbac"
	"paperbase/internal/tenant/service"
)

// StaffHandler serves the tenant staff CRUD. The acting company always comes
// from the session claims, never from the request body; every operation
// re-checks the caller's membership against the store via the guard.
type StaffHandler struct {
	lifecycle *service.Service
	guard     *rbac.Guard
}

// NewStaffHandler returns a StaffHandler.
func NewStaffHandler(lifecycle *service.Service, guard *rbac.Guard) *StaffHandler {
	return &StaffHandler{lifecycle: lifecycle, guard: guard}
}

// List handles GET /api/staff. Any active member of the company may read the
// roster.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionStaffList)
	if err != nil {
		respondError(w, err)
		return
	}
	staff, err := h.lifecycle.ListStaff(r.Context(), companyID)
	if err != nil {
		respondError(w, err)
		return
	}
	rows := make([]map[string]any, 0, len(staff))
	for _, s := range staff {
		rows = append(rows, map[string]any{
			"id":        s.ID,
			"name":      s.Name,
			"email":     s.Email,
			"role":      s.Role.DisplayName(),
			"status":    s.Status,
			"createdAt": s.CreatedAt,
		})
	}
	respondOK(w, map[string]any{"staff": rows})
}

// Create handles POST /api/staff.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionStaffCreate)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}
	userID, err := h.lifecycle.CreateStaff(r.Context(), service.CreateStaffInput{
		CompanyID: companyID,
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Role:      r.PostFormValue("role"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"userId": userID})
}

// Update handles PUT /api/staff/{id}.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionStaffUpdate)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}
	err = h.lifecycle.UpdateStaff(r.Context(), service.UpdateStaffInput{
		CompanyID: companyID,
		StaffID:   mux.Vars(r)["id"],
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Role:      r.PostFormValue("role"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

// Delete handles DELETE /api/staff/{id}.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionStaffDelete)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.lifecycle.DeleteStaff(r.Context(), companyID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

// Promote handles POST /api/staff/promote. Form fields: email, role (admin or
// super-admin).
func (h *StaffHandler) Promote(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := h.guard.Authorize(r.Context(), authz.ActionStaffPromote)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}
	if err := h.lifecycle.PromoteByEmail(r.Context(), companyID, r.PostFormValue("email"), r.PostFormValue("role")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}
