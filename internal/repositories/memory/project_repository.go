package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// ProjectRepository stores projects in memdb.
type ProjectRepository struct {
	session
}

var _ portsrepo.ProjectRepositoryFacade = (*ProjectRepository)(nil)

func projectDeleted(p domain.Project) bool { return p.IsDeleted }

func (r *ProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	var out *domain.Project
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableProjects, "project", projectID, projectDeleted)
		return err
	})
	return out, err
}

func (r *ProjectRepository) ListProjects(ctx context.Context, filter portsrepo.ProjectFilter) ([]domain.Project, error) {
	var out []domain.Project
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableProjects, indexID, func(p domain.Project) bool {
			return !p.IsDeleted && (filter.Status == "" || p.Status == filter.Status)
		})
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProjectName != out[j].ProjectName {
			return out[i].ProjectName < out[j].ProjectName
		}
		return out[i].ProjectID < out[j].ProjectID
	})
	return out, err
}

func (r *ProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		if err := checkMahareraUnique(txn, project); err != nil {
			return err
		}
		return insert(txn, tableProjects, project)
	})
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		if err := checkMahareraUnique(txn, project); err != nil {
			return err
		}
		return replaceLive(txn, tableProjects, "project", project.ProjectID, projectDeleted, project)
	})
}

func (r *ProjectRepository) MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableProjects, "project", projectID, projectDeleted, func(p *domain.Project) {
			markAudit(&p.IsDeleted, p.Touch, deletedBy, at)
		})
	})
}

// checkMahareraUnique mirrors the unique index on projects.maharera_no.
func checkMahareraUnique(txn *memdb.Txn, project domain.Project) error {
	clash, err := all(txn, tableProjects, indexID, func(p domain.Project) bool {
		return !p.IsDeleted && p.ProjectID != project.ProjectID && strings.EqualFold(p.MahareraNo, project.MahareraNo)
	})
	if err != nil {
		return err
	}
	if len(clash) > 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// ProjectDetailRepository stores disbursements, bank details, amenities and documents.
type ProjectDetailRepository struct {
	session
}

var _ portsrepo.ProjectDetailRepositoryFacade = (*ProjectDetailRepository)(nil)

func disbursementDeleted(d domain.Disbursement) bool { return d.IsDeleted }
func bankDetailDeleted(b domain.BankDetail) bool     { return b.IsDeleted }
func amenityDeleted(a domain.Amenity) bool           { return a.IsDeleted }
func documentDeleted(d domain.Document) bool         { return d.IsDeleted }

func (r *ProjectDetailRepository) FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	var out *domain.Disbursement
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableDisbursements, "disbursement", disbursementID, disbursementDeleted)
		return err
	})
	return out, err
}

func (r *ProjectDetailRepository) ListDisbursements(ctx context.Context, projectID string) ([]domain.Disbursement, error) {
	var out []domain.Disbursement
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableDisbursements, indexProject, func(d domain.Disbursement) bool { return !d.IsDeleted }, projectID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].DisbursementID < out[j].DisbursementID
	})
	return out, err
}

func (r *ProjectDetailRepository) SaveDisbursement(ctx context.Context, d domain.Disbursement) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableDisbursements, d) })
}

func (r *ProjectDetailRepository) UpdateDisbursement(ctx context.Context, d domain.Disbursement) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableDisbursements, "disbursement", d.DisbursementID, disbursementDeleted, d)
	})
}

func (r *ProjectDetailRepository) MarkDisbursementDeleted(ctx context.Context, disbursementID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableDisbursements, "disbursement", disbursementID, disbursementDeleted, func(d *domain.Disbursement) {
			markAudit(&d.IsDeleted, d.Touch, deletedBy, at)
		})
	})
}

func (r *ProjectDetailRepository) FindBankDetailByID(ctx context.Context, bankDetailID string) (*domain.BankDetail, error) {
	var out *domain.BankDetail
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableBankDetails, "bank detail", bankDetailID, bankDetailDeleted)
		return err
	})
	return out, err
}

func (r *ProjectDetailRepository) ListBankDetails(ctx context.Context, projectID string) ([]domain.BankDetail, error) {
	var out []domain.BankDetail
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableBankDetails, indexProject, func(b domain.BankDetail) bool { return !b.IsDeleted }, projectID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *ProjectDetailRepository) SaveBankDetail(ctx context.Context, b domain.BankDetail) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableBankDetails, b) })
}

func (r *ProjectDetailRepository) UpdateBankDetail(ctx context.Context, b domain.BankDetail) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableBankDetails, "bank detail", b.BankDetailID, bankDetailDeleted, b)
	})
}

func (r *ProjectDetailRepository) MarkBankDetailDeleted(ctx context.Context, bankDetailID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableBankDetails, "bank detail", bankDetailID, bankDetailDeleted, func(b *domain.BankDetail) {
			markAudit(&b.IsDeleted, b.Touch, deletedBy, at)
		})
	})
}

func (r *ProjectDetailRepository) FindAmenityByID(ctx context.Context, amenityID string) (*domain.Amenity, error) {
	var out *domain.Amenity
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableAmenities, "amenity", amenityID, amenityDeleted)
		return err
	})
	return out, err
}

func (r *ProjectDetailRepository) ListAmenities(ctx context.Context, projectID string) ([]domain.Amenity, error) {
	var out []domain.Amenity
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableAmenities, indexProject, func(a domain.Amenity) bool { return !a.IsDeleted }, projectID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ProjectDetailRepository) SaveAmenity(ctx context.Context, a domain.Amenity) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableAmenities, a) })
}

func (r *ProjectDetailRepository) UpdateAmenity(ctx context.Context, a domain.Amenity) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableAmenities, "amenity", a.AmenityID, amenityDeleted, a)
	})
}

func (r *ProjectDetailRepository) MarkAmenityDeleted(ctx context.Context, amenityID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableAmenities, "amenity", amenityID, amenityDeleted, func(a *domain.Amenity) {
			markAudit(&a.IsDeleted, a.Touch, deletedBy, at)
		})
	})
}

func (r *ProjectDetailRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	var out *domain.Document
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableDocuments, "document", documentID, documentDeleted)
		return err
	})
	return out, err
}

func (r *ProjectDetailRepository) ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error) {
	var out []domain.Document
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableDocuments, indexProject, func(d domain.Document) bool { return !d.IsDeleted }, projectID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r *ProjectDetailRepository) SaveDocument(ctx context.Context, d domain.Document) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableDocuments, d) })
}

func (r *ProjectDetailRepository) MarkDocumentDeleted(ctx context.Context, documentID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableDocuments, "document", documentID, documentDeleted, func(d *domain.Document) {
			markAudit(&d.IsDeleted, d.Touch, deletedBy, at)
		})
	})
}
