// Package testutil provee dobles en memoria de los puertos de persistencia
// para las pruebas de los casos de uso.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

// SeqIDGen genera ids deterministas "<prefix>_<n>" para pruebas.
type SeqIDGen struct {
	n atomic.Int64
}

func (g *SeqIDGen) NewID(prefix string) string {
	v := g.n.Add(1)
	if prefix == "" {
		return fmt.Sprintf("id_%d", v)
	}
	return fmt.Sprintf("%s_%d", prefix, v)
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

type FakeUserRepo struct {
	Users map[string]*entity.User
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{Users: make(map[string]*entity.User)}
}

func (r *FakeUserRepo) Create(u *entity.User) error {
	r.Users[u.ID] = u
	return nil
}

func (r *FakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.Users[id], nil
}

func (r *FakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepo) Update(u *entity.User) error {
	r.Users[u.ID] = u
	return nil
}

func (r *FakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.Users))
	for _, u := range r.Users {
		out = append(out, u)
	}
	return out, nil
}

func (r *FakeUserRepo) Deactivate(id string) error {
	if u, ok := r.Users[id]; ok {
		u.IsActive = false
	}
	return nil
}

var _ repository.UserRepository = (*FakeUserRepo)(nil)

// ─── Catálogos ───────────────────────────────────────────────────────────────

type FakeCompanyRepo struct {
	Companies map[string]*entity.Company
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{Companies: make(map[string]*entity.Company)}
}

func (r *FakeCompanyRepo) Create(c *entity.Company) error { r.Companies[c.ID] = c; return nil }
func (r *FakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.Companies[id], nil
}
func (r *FakeCompanyRepo) Update(c *entity.Company) error { r.Companies[c.ID] = c; return nil }
func (r *FakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.Companies))
	for _, c := range r.Companies {
		out = append(out, c)
	}
	return out, nil
}
func (r *FakeCompanyRepo) Deactivate(id string) error {
	if c, ok := r.Companies[id]; ok {
		c.IsActive = false
	}
	return nil
}

var _ repository.CompanyRepository = (*FakeCompanyRepo)(nil)

type FakeProjectRepo struct {
	Projects map[string]*entity.Project
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{Projects: make(map[string]*entity.Project)}
}

func (r *FakeProjectRepo) Create(p *entity.Project) error { r.Projects[p.ID] = p; return nil }
func (r *FakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.Projects[id], nil
}
func (r *FakeProjectRepo) Update(p *entity.Project) error { r.Projects[p.ID] = p; return nil }
func (r *FakeProjectRepo) List(limit, offset int) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		out = append(out, p)
	}
	return out, nil
}
func (r *FakeProjectRepo) Deactivate(id string) error {
	if p, ok := r.Projects[id]; ok {
		p.IsActive = false
	}
	return nil
}

var _ repository.ProjectRepository = (*FakeProjectRepo)(nil)

type FakeSupportRepo struct {
	Supports map[string]*entity.Support
}

func NewFakeSupportRepo() *FakeSupportRepo {
	return &FakeSupportRepo{Supports: make(map[string]*entity.Support)}
}

func (r *FakeSupportRepo) Create(s *entity.Support) error { r.Supports[s.ID] = s; return nil }
func (r *FakeSupportRepo) GetByID(id string) (*entity.Support, error) {
	return r.Supports[id], nil
}
func (r *FakeSupportRepo) Update(s *entity.Support) error { r.Supports[s.ID] = s; return nil }
func (r *FakeSupportRepo) List(limit, offset int) ([]*entity.Support, error) {
	out := make([]*entity.Support, 0, len(r.Supports))
	for _, s := range r.Supports {
		out = append(out, s)
	}
	return out, nil
}
func (r *FakeSupportRepo) Deactivate(id string) error {
	if s, ok := r.Supports[id]; ok {
		s.IsActive = false
	}
	return nil
}

var _ repository.SupportRepository = (*FakeSupportRepo)(nil)

type FakeModuleRepo struct {
	Modules map[string]*entity.Module
}

func NewFakeModuleRepo() *FakeModuleRepo {
	return &FakeModuleRepo{Modules: make(map[string]*entity.Module)}
}

func (r *FakeModuleRepo) Create(m *entity.Module) error { r.Modules[m.ID] = m; return nil }
func (r *FakeModuleRepo) GetByID(id string) (*entity.Module, error) {
	return r.Modules[id], nil
}
func (r *FakeModuleRepo) Update(m *entity.Module) error { r.Modules[m.ID] = m; return nil }
func (r *FakeModuleRepo) List(limit, offset int) ([]*entity.Module, error) {
	out := make([]*entity.Module, 0, len(r.Modules))
	for _, m := range r.Modules {
		out = append(out, m)
	}
	return out, nil
}
func (r *FakeModuleRepo) Deactivate(id string) error {
	if m, ok := r.Modules[id]; ok {
		m.IsActive = false
	}
	return nil
}

var _ repository.ModuleRepository = (*FakeModuleRepo)(nil)

// ─── Asignaciones ────────────────────────────────────────────────────────────

type FakeAssignmentRepo struct {
	Assignments map[string]*entity.Assignment
}

func NewFakeAssignmentRepo() *FakeAssignmentRepo {
	return &FakeAssignmentRepo{Assignments: make(map[string]*entity.Assignment)}
}

func (r *FakeAssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	r.Assignments[a.ID] = a
	return nil
}

func (r *FakeAssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.Assignments[id], nil
}

func (r *FakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	delete(r.Assignments, id)
	return nil
}

func (r *FakeAssignmentRepo) ListByConsultor(ctx context.Context, consultorID string) ([]*entity.Assignment, error) {
	out := make([]*entity.Assignment, 0)
	for _, a := range r.Assignments {
		if a.ConsultorID == consultorID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *FakeAssignmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Assignment, error) {
	out := make([]*entity.Assignment, 0)
	for _, a := range r.Assignments {
		if a.CompanyID == companyID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *FakeAssignmentRepo) DeactivateByConsultor(ctx context.Context, consultorID string) ([]string, error) {
	return r.deactivateWhere(func(a *entity.Assignment) bool { return a.ConsultorID == consultorID })
}

func (r *FakeAssignmentRepo) DeactivateByCompany(ctx context.Context, companyID string) ([]string, error) {
	return r.deactivateWhere(func(a *entity.Assignment) bool { return a.CompanyID == companyID })
}

func (r *FakeAssignmentRepo) DeactivateByProject(ctx context.Context, projectID string) ([]string, error) {
	return r.deactivateWhere(func(a *entity.Assignment) bool {
		return a.Kind == entity.AssignmentKindProject && a.ProjectID == projectID
	})
}

func (r *FakeAssignmentRepo) deactivateWhere(match func(*entity.Assignment) bool) ([]string, error) {
	var ids []string
	for _, a := range r.Assignments {
		if a.IsActive && match(a) {
			a.IsActive = false
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

var _ repository.AssignmentRepository = (*FakeAssignmentRepo)(nil)

// ─── Tarifario ───────────────────────────────────────────────────────────────

type FakeTariffRepo struct {
	Entries map[string]*entity.TariffEntry
	// FailCreate fuerza el fallo de Create (prueba la semántica best-effort).
	FailCreate error
}

func NewFakeTariffRepo() *FakeTariffRepo {
	return &FakeTariffRepo{Entries: make(map[string]*entity.TariffEntry)}
}

func (r *FakeTariffRepo) Create(ctx context.Context, t *entity.TariffEntry) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.Entries[t.ID] = t
	return nil
}

func (r *FakeTariffRepo) GetByID(ctx context.Context, id string) (*entity.TariffEntry, error) {
	return r.Entries[id], nil
}

func (r *FakeTariffRepo) Delete(ctx context.Context, id string) error {
	delete(r.Entries, id)
	return nil
}

func (r *FakeTariffRepo) List(ctx context.Context) ([]*entity.TariffEntry, error) {
	out := make([]*entity.TariffEntry, 0, len(r.Entries))
	for _, t := range r.Entries {
		out = append(out, t)
	}
	return out, nil
}

func (r *FakeTariffRepo) ListActive(ctx context.Context) ([]*entity.TariffEntry, error) {
	out := make([]*entity.TariffEntry, 0)
	for _, t := range r.Entries {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *FakeTariffRepo) DeactivateByAssignmentIDs(ctx context.Context, assignmentIDs []string) error {
	for _, id := range assignmentIDs {
		if t, ok := r.Entries[entity.TariffID(id)]; ok {
			t.IsActive = false
		}
	}
	return nil
}

var _ repository.TariffRepository = (*FakeTariffRepo)(nil)

// ─── Reportes ────────────────────────────────────────────────────────────────

type FakeReportRepo struct {
	Reports map[string]*entity.Report
	order   []string
}

func NewFakeReportRepo() *FakeReportRepo {
	return &FakeReportRepo{Reports: make(map[string]*entity.Report)}
}

func (r *FakeReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	r.Reports[rep.ID] = rep
	r.order = append(r.order, rep.ID)
	return nil
}

func (r *FakeReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	return r.Reports[id], nil
}

func (r *FakeReportRepo) Update(ctx context.Context, rep *entity.Report) error {
	r.Reports[rep.ID] = rep
	return nil
}

func (r *FakeReportRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Report, error) {
	return r.filter(func(rep *entity.Report) bool { return rep.Status == status }), nil
}

func (r *FakeReportRepo) ListApprovedInRange(ctx context.Context, from, to time.Time) ([]*entity.Report, error) {
	return r.filter(func(rep *entity.Report) bool {
		if rep.Status != entity.ReportStatusAprobado {
			return false
		}
		if !from.IsZero() && rep.Fecha.Before(from) {
			return false
		}
		if !to.IsZero() && rep.Fecha.After(to) {
			return false
		}
		return true
	}), nil
}

func (r *FakeReportRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]*entity.Report, error) {
	return r.filter(func(rep *entity.Report) bool { return rep.AssignmentID == assignmentID }), nil
}

func (r *FakeReportRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Report, error) {
	return r.filter(func(rep *entity.Report) bool { return rep.UserID == userID }), nil
}

// filter preserva el orden de inserción para que las pruebas sean deterministas.
func (r *FakeReportRepo) filter(match func(*entity.Report) bool) []*entity.Report {
	out := make([]*entity.Report, 0)
	for _, id := range r.order {
		if rep, ok := r.Reports[id]; ok && match(rep) {
			out = append(out, rep)
		}
	}
	return out
}

var _ repository.ReportRepository = (*FakeReportRepo)(nil)

// ─── Transacciones ───────────────────────────────────────────────────────────

// FakeTxRunner ejecuta el callback directamente sobre los fakes, sin transacción.
type FakeTxRunner struct {
	Assignments *FakeAssignmentRepo
	Tariffs     *FakeTariffRepo
}

func (tx *FakeTxRunner) Run(ctx context.Context, fn func(
	assignments repository.AssignmentRepository,
	tariffs repository.TariffRepository,
) error) error {
	return fn(tx.Assignments, tx.Tariffs)
}
