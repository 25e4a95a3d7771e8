package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	ProjectName       string  `json:"projectName" binding:"required"`
	Status            string  `json:"status" binding:"omitempty,oneof=UPCOMING IN_PROGRESS COMPLETED"`
	Progress          int     `json:"progress" binding:"min=0,max=100"`
	StartDate         *string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	CompletionDate    *string `json:"completionDate" binding:"omitempty,datetime=2006-01-02"`
	MahareraNo        string  `json:"mahareraNo" binding:"required,rera"`
	ProjectAddress    string  `json:"projectAddress"`
	LetterHeadFileURL string  `json:"letterHeadFileURL" binding:"omitempty,url"`
}

// UpdateProjectRequest defines the patchable project fields.
type UpdateProjectRequest struct {
	ProjectName       *string `json:"projectName"`
	Status            *string `json:"status" binding:"omitempty,oneof=UPCOMING IN_PROGRESS COMPLETED"`
	Progress          *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	StartDate         *string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	CompletionDate    *string `json:"completionDate" binding:"omitempty,datetime=2006-01-02"`
	MahareraNo        *string `json:"mahareraNo" binding:"omitempty,rera"`
	ProjectAddress    *string `json:"projectAddress"`
	LetterHeadFileURL *string `json:"letterHeadFileURL" binding:"omitempty,url"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=UPCOMING IN_PROGRESS COMPLETED"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID         string               `json:"projectId"`
	ProjectName       string               `json:"projectName"`
	Status            domain.ProjectStatus `json:"status"`
	Progress          int                  `json:"progress"`
	StartDate         *string              `json:"startDate"`
	CompletionDate    *string              `json:"completionDate"`
	MahareraNo        string               `json:"mahareraNo"`
	ProjectAddress    string               `json:"projectAddress"`
	LetterHeadFileURL string               `json:"letterHeadFileURL"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy     string               `json:"lastUpdatedBy"`
}

// ProjectBasicInfo is the short form used by pickers.
type ProjectBasicInfo struct {
	ProjectID   string               `json:"projectId"`
	ProjectName string               `json:"projectName"`
	Status      domain.ProjectStatus `json:"status"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:         p.ProjectID,
		ProjectName:       p.ProjectName,
		Status:            p.Status,
		Progress:          p.Progress,
		StartDate:         formatDatePtr(p.StartDate),
		CompletionDate:    formatDatePtr(p.CompletionDate),
		MahareraNo:        p.MahareraNo,
		ProjectAddress:    p.ProjectAddress,
		LetterHeadFileURL: p.LetterHeadFileURL,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
		LastUpdatedAt:     p.LastUpdatedAt,
		LastUpdatedBy:     p.LastUpdatedBy,
	}
}

// ToListProjectResponse converts a slice of projects.
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}

// ToProjectBasicInfoList converts projects to their short form.
func ToProjectBasicInfoList(projects []domain.Project) []ProjectBasicInfo {
	res := make([]ProjectBasicInfo, len(projects))
	for i, p := range projects {
		res[i] = ProjectBasicInfo{ProjectID: p.ProjectID, ProjectName: p.ProjectName, Status: p.Status}
	}
	return res
}

// RegisterWingRequest is one wing of the project registration wizard.
type RegisterWingRequest struct {
	CreateWingRequest
	Floors []CreateFloorRequest `json:"floors" binding:"dive"`
}

// RegisterProjectRequest is the whole registration wizard submitted at once.
type RegisterProjectRequest struct {
	Project       CreateProjectRequest        `json:"project" binding:"required"`
	Wings         []RegisterWingRequest       `json:"wings" binding:"dive"`
	BankDetails   []CreateBankDetailRequest   `json:"bankDetails" binding:"dive"`
	Amenities     []CreateAmenityRequest      `json:"amenities" binding:"dive"`
	Disbursements []CreateDisbursementRequest `json:"disbursements" binding:"required,min=1,dive"`
}

// ProjectDetailsResponse is a project with its inventory and schedule.
type ProjectDetailsResponse struct {
	Project     ProjectResponse              `json:"project"`
	Wings       []WingResponse               `json:"wings"`
	Floors      []FloorResponse              `json:"floors"`
	Flats       []FlatResponse               `json:"flats"`
	BankDetails []BankDetailResponse         `json:"bankDetails"`
	Amenities   []AmenityResponse            `json:"amenities"`
	Schedule    DisbursementScheduleResponse `json:"disbursementSchedule"`
}

// ToProjectDetailsResponse converts a domain.ProjectDetails.
func ToProjectDetailsResponse(d *domain.ProjectDetails) ProjectDetailsResponse {
	return ProjectDetailsResponse{
		Project:     ToProjectResponse(&d.Project),
		Wings:       ToListWingResponse(d.Wings),
		Floors:      ToListFloorResponse(d.Floors),
		Flats:       ToListFlatResponse(d.Flats),
		BankDetails: ToListBankDetailResponse(d.BankDetails),
		Amenities:   ToListAmenityResponse(d.Amenities),
		Schedule:    ToDisbursementScheduleResponse(d.Disbursements),
	}
}
