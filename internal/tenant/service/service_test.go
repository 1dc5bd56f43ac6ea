package service

import (
	"context"
	"testing"

	companydomain "paperbase/internal/company/domain"
	companyrepo "paperbase/internal/company/repository"
	documentdomain "paperbase/internal/document/domain"
	documentrepo "paperbase/internal/document/repository"
	"paperbase/internal/fault"
	membershipdomain "paperbase/internal/membership/domain"
	membershiprepo "paperbase/internal/membership/repository"
	"paperbase/internal/security"
	"paperbase/internal/tenant"
	userdomain "paperbase/internal/user/domain"
	userrepo "paperbase/internal/user/repository"
)

// storeData is the in-memory table set shared by the fake repositories. The
// fakes enforce the same uniqueness rules as the Postgres schema so services
// see Conflict where a unique index would fire.
type storeData struct {
	users       map[string]*userdomain.User
	companies   map[string]*companydomain.Company
	memberships map[string]*membershipdomain.Membership
	documents   map[string]*documentdomain.Document
}

func newStoreData() *storeData {
	return &storeData{
		users:       map[string]*userdomain.User{},
		companies:   map[string]*companydomain.Company{},
		memberships: map[string]*membershipdomain.Membership{},
		documents:   map[string]*documentdomain.Document{},
	}
}

func (d *storeData) clone() *storeData {
	c := newStoreData()
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range d.companies {
		co := *v
		c.companies[k] = &co
	}
	for k, v := range d.memberships {
		m := *v
		c.memberships[k] = &m
	}
	for k, v := range d.documents {
		doc := *v
		c.documents[k] = &doc
	}
	return c
}

type fakeStore struct {
	data *storeData
}

func (f *fakeStore) Users() userrepo.Repository             { return &fakeUsers{f.data} }
func (f *fakeStore) Companies() companyrepo.Repository      { return &fakeCompanies{f.data} }
func (f *fakeStore) Memberships() membershiprepo.Repository { return &fakeMemberships{f.data} }
func (f *fakeStore) Documents() documentrepo.Repository     { return &fakeDocuments{f.data} }

// Transact snapshots the tables and restores them when fn fails, matching the
// rollback discipline of the SQL store.
func (f *fakeStore) Transact(ctx context.Context, fn func(tenant.Store) error) error {
	snapshot := f.data.clone()
	if err := fn(f); err != nil {
		*f.data = *snapshot
		return err
	}
	return nil
}

type fakeUsers struct{ d *storeData }

func (r *fakeUsers) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	return r.d.users[id], nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	for _, u := range r.d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) Create(ctx context.Context, u *userdomain.User) error {
	if existing, _ := r.GetByEmail(ctx, u.Email); existing != nil {
		return fault.Conflict("user with this email already exists")
	}
	r.d.users[u.ID] = u
	return nil
}

func (r *fakeUsers) Update(ctx context.Context, u *userdomain.User) error {
	r.d.users[u.ID] = u
	return nil
}

func (r *fakeUsers) Delete(ctx context.Context, id string) error {
	delete(r.d.users, id)
	return nil
}

type fakeCompanies struct{ d *storeData }

func (r *fakeCompanies) GetByID(ctx context.Context, id string) (*companydomain.Company, error) {
	return r.d.companies[id], nil
}

func (r *fakeCompanies) GetBySlug(ctx context.Context, slug string) (*companydomain.Company, error) {
	for _, c := range r.d.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanies) List(ctx context.Context) ([]*companydomain.Company, error) {
	var out []*companydomain.Company
	for _, c := range r.d.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanies) Create(ctx context.Context, c *companydomain.Company) error {
	if existing, _ := r.GetBySlug(ctx, c.Slug); existing != nil {
		return fault.Conflict("company with this slug already exists")
	}
	r.d.companies[c.ID] = c
	return nil
}

func (r *fakeCompanies) Update(ctx context.Context, c *companydomain.Company) error {
	r.d.companies[c.ID] = c
	return nil
}

// Delete cascades to memberships the way the schema's foreign key does.
func (r *fakeCompanies) Delete(ctx context.Context, id string) error {
	delete(r.d.companies, id)
	for mid, m := range r.d.memberships {
		if m.CompanyID == id {
			delete(r.d.memberships, mid)
		}
	}
	return nil
}

type fakeMemberships struct{ d *storeData }

func (r *fakeMemberships) GetByID(ctx context.Context, id string) (*membershipdomain.Membership, error) {
	return r.d.memberships[id], nil
}

func (r *fakeMemberships) GetByUserAndCompany(ctx context.Context, userID, companyID string) (*membershipdomain.Membership, error) {
	for _, m := range r.d.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberships) ListByUser(ctx context.Context, userID string) ([]*membershipdomain.Membership, error) {
	var out []*membershipdomain.Membership
	for _, m := range r.d.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberships) ListByCompany(ctx context.Context, companyID string) ([]*membershipdomain.Membership, error) {
	var out []*membershipdomain.Membership
	for _, m := range r.d.memberships {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberships) CountByUser(ctx context.Context, userID string) (int, error) {
	list, _ := r.ListByUser(ctx, userID)
	return len(list), nil
}

func (r *fakeMemberships) CountByCompany(ctx context.Context, companyID string) (int, error) {
	list, _ := r.ListByCompany(ctx, companyID)
	return len(list), nil
}

func (r *fakeMemberships) Create(ctx context.Context, m *membershipdomain.Membership) error {
	if existing, _ := r.GetByUserAndCompany(ctx, m.UserID, m.CompanyID); existing != nil {
		return fault.Conflict("user already has a membership in this company")
	}
	r.d.memberships[m.ID] = m
	return nil
}

func (r *fakeMemberships) Update(ctx context.Context, m *membershipdomain.Membership) error {
	r.d.memberships[m.ID] = m
	return nil
}

func (r *fakeMemberships) Delete(ctx context.Context, id string) error {
	delete(r.d.memberships, id)
	return nil
}

type fakeDocuments struct{ d *storeData }

func (r *fakeDocuments) GetByID(ctx context.Context, id string) (*documentdomain.Document, error) {
	return r.d.documents[id], nil
}

func (r *fakeDocuments) ListByCompany(ctx context.Context, companyID string) ([]*documentdomain.Document, error) {
	var out []*documentdomain.Document
	for _, doc := range r.d.documents {
		if doc.CompanyID == companyID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeDocuments) CountByCompany(ctx context.Context, companyID string) (int, error) {
	list, _ := r.ListByCompany(ctx, companyID)
	return len(list), nil
}

func (r *fakeDocuments) Create(ctx context.Context, doc *documentdomain.Document) error {
	r.d.documents[doc.ID] = doc
	return nil
}

func newTestService() (*Service, *storeData) {
	data := newStoreData()
	return New(&fakeStore{data: data}, security.NewHasher(4)), data
}

func acmeInput() CreateCompanyInput {
	return CreateCompanyInput{
		Name:          "Acme",
		Slug:          "acme",
		Plan:          "PRO",
		OwnerName:     "Olivia",
		OwnerEmail:    "o@acme.test",
		OwnerPassword: "Pw123!",
		OwnerRole:     "admin",
	}
}

func TestCreateCompany(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	company := data.companies[companyID]
	if company == nil {
		t.Fatal("company not persisted")
	}
	if company.Slug != "acme" || company.Plan != companydomain.PlanPro || !company.IsActive {
		t.Errorf("unexpected company: %+v", company)
	}
	if len(data.users) != 1 || len(data.memberships) != 1 {
		t.Fatalf("want 1 user and 1 membership, got %d/%d", len(data.users), len(data.memberships))
	}
	for _, m := range data.memberships {
		if m.Role != membershipdomain.RoleAdmin || m.Status != membershipdomain.StatusActive {
			t.Errorf("bootstrap membership should be ACTIVE admin, got %+v", m)
		}
	}
}

func TestCreateCompany_DuplicateSlugZeroWrites(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateCompany(ctx, acmeInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := acmeInput()
	second.OwnerEmail = "other@acme.test"

	_, err := svc.CreateCompany(ctx, second)
	if !fault.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if len(data.companies) != 1 || len(data.users) != 1 || len(data.memberships) != 1 {
		t.Errorf("conflict must leave zero writes: %d companies, %d users, %d memberships",
			len(data.companies), len(data.users), len(data.memberships))
	}
}

func TestCreateCompany_DuplicateOwnerEmailRollsBack(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateCompany(ctx, acmeInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := acmeInput()
	second.Slug = "globex"
	second.Name = "Globex"

	_, err := svc.CreateCompany(ctx, second)
	if !fault.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if len(data.companies) != 1 {
		t.Errorf("failed create must not leave an orphaned company, have %d", len(data.companies))
	}
}

func TestCreateCompany_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateCompanyInput)
	}{
		{"missing name", func(in *CreateCompanyInput) { in.Name = "" }},
		{"missing slug", func(in *CreateCompanyInput) { in.Slug = "" }},
		{"bad slug", func(in *CreateCompanyInput) { in.Slug = "Not A Slug!" }},
		{"unknown plan", func(in *CreateCompanyInput) { in.Plan = "PLATINUM" }},
		{"missing owner email", func(in *CreateCompanyInput) { in.OwnerEmail = "" }},
		{"missing owner password", func(in *CreateCompanyInput) { in.OwnerPassword = "" }},
		{"unknown role", func(in *CreateCompanyInput) { in.OwnerRole = "god-mode" }},
		{"non-elevated role", func(in *CreateCompanyInput) { in.OwnerRole = "staff" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := acmeInput()
			tc.mutate(&in)
			if _, err := svc.CreateCompany(ctx, in); !fault.IsValidation(err) {
				t.Errorf("want validation error, got %v", err)
			}
		})
	}
}

func TestCreateCompany_SuperAdminRole(t *testing.T) {
	svc, data := newTestService()
	in := acmeInput()
	in.OwnerRole = "super-admin"

	if _, err := svc.CreateCompany(context.Background(), in); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	for _, m := range data.memberships {
		if m.Role != membershipdomain.RoleOwner {
			t.Errorf("super-admin should map to owner, got %q", m.Role)
		}
	}
}

func TestUpdateCompany(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	err = svc.UpdateCompany(ctx, UpdateCompanyInput{
		CompanyID:  companyID,
		Name:       "Acme Corp",
		Slug:       "acme-corp",
		Plan:       "TEAM",
		OwnerName:  "Olivia P",
		OwnerEmail: "o@acme.test",
		OwnerRole:  "super-admin",
	})
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	company := data.companies[companyID]
	if company.Name != "Acme Corp" || company.Slug != "acme-corp" || company.Plan != companydomain.PlanTeam {
		t.Errorf("unexpected company after update: %+v", company)
	}
	for _, m := range data.memberships {
		if m.Role != membershipdomain.RoleOwner {
			t.Errorf("role reassignment should hit the membership, got %q", m.Role)
		}
	}
	for _, u := range data.users {
		if u.Name != "Olivia P" {
			t.Errorf("owner name not updated: %+v", u)
		}
	}
}

func TestUpdateCompany_SlugConflictOnlyWhenChanged(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	acmeID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("create acme: %v", err)
	}
	other := acmeInput()
	other.Slug = "globex"
	other.Name = "Globex"
	other.OwnerEmail = "o@globex.test"
	if _, err := svc.CreateCompany(ctx, other); err != nil {
		t.Fatalf("create globex: %v", err)
	}

	// Keeping the same slug is not a conflict with itself.
	base := UpdateCompanyInput{
		CompanyID:  acmeID,
		Name:       "Acme",
		Slug:       "acme",
		OwnerName:  "Olivia",
		OwnerEmail: "o@acme.test",
	}
	if err := svc.UpdateCompany(ctx, base); err != nil {
		t.Fatalf("same-slug update: %v", err)
	}

	base.Slug = "globex"
	if err := svc.UpdateCompany(ctx, base); !fault.IsConflict(err) {
		t.Errorf("taking another company's slug must conflict, got %v", err)
	}
}

func TestUpdateCompany_OwnerPasswordOnlyWhenProvided(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	var before string
	for _, u := range data.users {
		before = u.PasswordHash
	}

	update := UpdateCompanyInput{
		CompanyID:  companyID,
		Name:       "Acme",
		Slug:       "acme",
		OwnerName:  "Olivia",
		OwnerEmail: "o@acme.test",
	}
	if err := svc.UpdateCompany(ctx, update); err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	for _, u := range data.users {
		if u.PasswordHash != before {
			t.Error("password must not change when not provided")
		}
	}

	update.OwnerPassword = "NewPw456!"
	if err := svc.UpdateCompany(ctx, update); err != nil {
		t.Fatalf("UpdateCompany with password: %v", err)
	}
	for _, u := range data.users {
		if u.PasswordHash == before {
			t.Error("password should change when provided")
		}
	}
}

func TestUpdateCompany_NotFound(t *testing.T) {
	svc, _ := newTestService()
	err := svc.UpdateCompany(context.Background(), UpdateCompanyInput{
		CompanyID:  "nope",
		Name:       "X",
		Slug:       "x",
		OwnerName:  "X",
		OwnerEmail: "x@x.test",
	})
	if !fault.IsNotFound(err) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestDeleteCompany_DocumentsGuard(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	data.documents["d1"] = &documentdomain.Document{ID: "d1", CompanyID: companyID, Name: "q3.pdf"}

	if err := svc.DeleteCompany(ctx, companyID); !fault.IsConflict(err) {
		t.Fatalf("company with documents must not delete, got %v", err)
	}
	if data.companies[companyID] == nil {
		t.Error("company must survive the failed delete")
	}

	delete(data.documents, "d1")
	if err := svc.DeleteCompany(ctx, companyID); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	if len(data.companies) != 0 || len(data.memberships) != 0 {
		t.Errorf("delete must remove company and memberships, have %d/%d", len(data.companies), len(data.memberships))
	}
	if len(data.users) != 1 {
		t.Errorf("users must be preserved on company delete, have %d", len(data.users))
	}
}

func TestCreateStaff(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	staffID, err := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID,
		Name:      "Sam",
		Email:     "sam@acme.test",
		Password:  "Pw123!",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	m, _ := (&fakeMemberships{data}).GetByUserAndCompany(ctx, staffID, companyID)
	if m == nil || m.Role != membershipdomain.RoleMember || m.Status != membershipdomain.StatusActive {
		t.Errorf("default staff membership should be ACTIVE member, got %+v", m)
	}
}

func TestCreateStaff_EmailGloballyUnique(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	acmeID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("create acme: %v", err)
	}
	other := acmeInput()
	other.Slug = "globex"
	other.OwnerEmail = "o@globex.test"
	globexID, err := svc.CreateCompany(ctx, other)
	if err != nil {
		t.Fatalf("create globex: %v", err)
	}

	if _, err := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: acmeID, Name: "Sam", Email: "sam@shared.test", Password: "Pw123!",
	}); err != nil {
		t.Fatalf("first staff: %v", err)
	}
	// The same email cannot become a second identity in another tenant.
	_, err = svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: globexID, Name: "Sam Again", Email: "sam@shared.test", Password: "Pw123!",
	})
	if !fault.IsConflict(err) {
		t.Errorf("want conflict, got %v", err)
	}
}

func TestCreateStaff_UnknownRoleRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	companyID, err := svc.CreateCompany(ctx, acmeInput())
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	_, err = svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sam", Email: "sam@acme.test", Password: "Pw123!", Role: "intern",
	})
	if !fault.IsValidation(err) {
		t.Errorf("unknown role must be a validation error, got %v", err)
	}
}

func TestUpdateStaff(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	staffID, err := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sam", Email: "sam@acme.test", Password: "Pw123!",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}

	err = svc.UpdateStaff(ctx, UpdateStaffInput{
		CompanyID: companyID,
		StaffID:   staffID,
		Name:      "Samantha",
		Email:     "sam@acme.test",
		Role:      "manager",
	})
	if err != nil {
		t.Fatalf("UpdateStaff: %v", err)
	}
	if data.users[staffID].Name != "Samantha" {
		t.Errorf("name not updated: %+v", data.users[staffID])
	}
	m, _ := (&fakeMemberships{data}).GetByUserAndCompany(ctx, staffID, companyID)
	if m.Role != membershipdomain.RoleManager {
		t.Errorf("role not updated: %q", m.Role)
	}
}

func TestUpdateStaff_EmailConflictExcludesSelf(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	staffID, _ := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sam", Email: "sam@acme.test", Password: "Pw123!",
	})

	// Re-submitting the same email is fine.
	err := svc.UpdateStaff(ctx, UpdateStaffInput{
		CompanyID: companyID, StaffID: staffID, Name: "Sam", Email: "sam@acme.test",
	})
	if err != nil {
		t.Fatalf("self-email update: %v", err)
	}

	// Taking the owner's email is not.
	err = svc.UpdateStaff(ctx, UpdateStaffInput{
		CompanyID: companyID, StaffID: staffID, Name: "Sam", Email: "o@acme.test",
	})
	if !fault.IsConflict(err) {
		t.Errorf("want conflict, got %v", err)
	}
}

func TestUpdateStaff_OutsideCompanyNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	err := svc.UpdateStaff(ctx, UpdateStaffInput{
		CompanyID: companyID, StaffID: "stranger", Name: "X", Email: "x@x.test",
	})
	if !fault.IsNotFound(err) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestDeleteStaff_ReferenceCountedUser(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	acmeID, _ := svc.CreateCompany(ctx, acmeInput())
	other := acmeInput()
	other.Slug = "globex"
	other.OwnerEmail = "o@globex.test"
	globexID, _ := svc.CreateCompany(ctx, other)

	staffID, err := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: acmeID, Name: "Sam", Email: "sam@shared.test", Password: "Pw123!",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	// A second membership for the same user in another company.
	data.memberships["m-globex"] = &membershipdomain.Membership{
		ID: "m-globex", UserID: staffID, CompanyID: globexID,
		Role: membershipdomain.RoleMember, Status: membershipdomain.StatusActive,
	}

	if err := svc.DeleteStaff(ctx, acmeID, staffID); err != nil {
		t.Fatalf("DeleteStaff: %v", err)
	}
	if data.users[staffID] == nil {
		t.Fatal("user with a remaining membership must survive")
	}

	if err := svc.DeleteStaff(ctx, globexID, staffID); err != nil {
		t.Fatalf("DeleteStaff last membership: %v", err)
	}
	if data.users[staffID] != nil {
		t.Error("removing the last membership must delete the user")
	}
}

func TestDeleteStaff_NotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	if err := svc.DeleteStaff(ctx, companyID, "stranger"); !fault.IsNotFound(err) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestPromoteByEmail(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	staffID, _ := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sam", Email: "sam@acme.test", Password: "Pw123!",
	})

	if err := svc.PromoteByEmail(ctx, companyID, "Sam@Acme.Test", "admin"); err != nil {
		t.Fatalf("PromoteByEmail: %v", err)
	}
	m, _ := (&fakeMemberships{data}).GetByUserAndCompany(ctx, staffID, companyID)
	if m.Role != membershipdomain.RoleAdmin {
		t.Errorf("role = %q, want admin", m.Role)
	}

	if err := svc.PromoteByEmail(ctx, companyID, "sam@acme.test", "super-admin"); err != nil {
		t.Fatalf("promote to owner: %v", err)
	}
	m, _ = (&fakeMemberships{data}).GetByUserAndCompany(ctx, staffID, companyID)
	if m.Role != membershipdomain.RoleOwner {
		t.Errorf("role = %q, want owner", m.Role)
	}
}

func TestPromoteByEmail_NeverCreatesMembership(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	acmeID, _ := svc.CreateCompany(ctx, acmeInput())
	other := acmeInput()
	other.Slug = "globex"
	other.OwnerEmail = "o@globex.test"
	if _, err := svc.CreateCompany(ctx, other); err != nil {
		t.Fatalf("create globex: %v", err)
	}
	before := len(data.memberships)

	// The globex owner exists but has no membership in acme.
	err := svc.PromoteByEmail(ctx, acmeID, "o@globex.test", "admin")
	if !fault.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if len(data.memberships) != before {
		t.Error("promote must never create a membership")
	}
}

func TestPromoteByEmail_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	if err := svc.PromoteByEmail(ctx, companyID, "o@acme.test", "staff"); !fault.IsValidation(err) {
		t.Errorf("promotion below admin must be rejected, got %v", err)
	}
}

func TestListCompanies(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	if _, err := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sam", Email: "sam@acme.test", Password: "Pw123!",
	}); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	data.documents["d1"] = &documentdomain.Document{ID: "d1", CompanyID: companyID, Name: "q3.pdf"}

	list, err := svc.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 company, got %d", len(list))
	}
	got := list[0]
	if got.MemberCount != 2 || got.DocumentCount != 1 {
		t.Errorf("counts = %d members / %d documents, want 2/1", got.MemberCount, got.DocumentCount)
	}
	if got.Owner == nil || got.Owner.Email != "o@acme.test" {
		t.Errorf("owner summary missing or wrong: %+v", got.Owner)
	}
}

func TestListStaff_ActiveOnly(t *testing.T) {
	svc, data := newTestService()
	ctx := context.Background()

	companyID, _ := svc.CreateCompany(ctx, acmeInput())
	suspendedID, _ := svc.CreateStaff(ctx, CreateStaffInput{
		CompanyID: companyID, Name: "Sue", Email: "sue@acme.test", Password: "Pw123!",
	})
	m, _ := (&fakeMemberships{data}).GetByUserAndCompany(ctx, suspendedID, companyID)
	m.Status = membershipdomain.StatusSuspended

	staff, err := svc.ListStaff(ctx, companyID)
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if len(staff) != 1 {
		t.Fatalf("want only the active owner, got %d rows", len(staff))
	}
	if staff[0].Email != "o@acme.test" {
		t.Errorf("unexpected staff row: %+v", staff[0])
	}
}
