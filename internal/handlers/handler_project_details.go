package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectDetailHandler serves the per-project sub-resources: payment
// schedule, bank accounts, amenities and documents.
type projectDetailHandler struct {
	detailService  portssvc.ProjectDetailSvcFacade
	maxUploadBytes int64
}

func registerProjectDetailRoutes(rg *gin.RouterGroup, detailService portssvc.ProjectDetailSvcFacade, maxUploadBytes int64) {
	h := &projectDetailHandler{detailService: detailService, maxUploadBytes: maxUploadBytes}

	project := rg.Group("/projects/:id")
	{
		project.GET("/disbursements", h.listDisbursements)
		project.POST("/disbursements", h.addDisbursement)
		project.GET("/bank-details", h.listBankDetails)
		project.POST("/bank-details", h.addBankDetail)
		project.GET("/amenities", h.listAmenities)
		project.POST("/amenities", h.addAmenity)
		project.GET("/documents", h.listDocuments)
		project.POST("/documents", h.uploadDocument)
	}

	rg.PUT("/disbursements/:id", h.updateDisbursement)
	rg.DELETE("/disbursements/:id", h.deleteDisbursement)
	rg.PUT("/bank-details/:id", h.updateBankDetail)
	rg.DELETE("/bank-details/:id", h.deleteBankDetail)
	rg.PUT("/amenities/:id", h.updateAmenity)
	rg.DELETE("/amenities/:id", h.deleteAmenity)
	rg.GET("/documents/:id/file", h.downloadDocument)
	rg.DELETE("/documents/:id", h.deleteDocument)
}

// listDisbursements godoc
// @Summary Payment schedule of a project
// @Description Lists the stages with the running total and whether the schedule reaches 100%.
// @Tags disbursements
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.DisbursementScheduleResponse
// @Security BearerAuth
// @Router /projects/{id}/disbursements [get]
func (h *projectDetailHandler) listDisbursements(c *gin.Context) {
	stages, err := h.detailService.ListDisbursements(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list disbursements")
		return
	}
	c.JSON(http.StatusOK, dto.ToDisbursementScheduleResponse(stages))
}

// addDisbursement godoc
// @Summary Add a payment stage
// @Description Rejected when the project's total would exceed 100%.
// @Tags disbursements
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param stage body dto.CreateDisbursementRequest true "Stage"
// @Success 201 {object} dto.DisbursementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/disbursements [post]
func (h *projectDetailHandler) addDisbursement(c *gin.Context) {
	var req dto.CreateDisbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stage, err := h.detailService.AddDisbursement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add disbursement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDisbursementResponse(stage))
}

// @Summary Update a payment stage
// @Tags disbursements
// @Accept json
// @Produce json
// @Param id path string true "Disbursement ID"
// @Param stage body dto.UpdateDisbursementRequest true "Fields to change"
// @Success 200 {object} dto.DisbursementResponse
// @Security BearerAuth
// @Router /disbursements/{id} [put]
func (h *projectDetailHandler) updateDisbursement(c *gin.Context) {
	var req dto.UpdateDisbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stage, err := h.detailService.UpdateDisbursement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update disbursement")
		return
	}
	c.JSON(http.StatusOK, dto.ToDisbursementResponse(stage))
}

// @Summary Delete a payment stage
// @Tags disbursements
// @Param id path string true "Disbursement ID"
// @Success 204
// @Security BearerAuth
// @Router /disbursements/{id} [delete]
func (h *projectDetailHandler) deleteDisbursement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.detailService.DeleteDisbursement(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete disbursement")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Bank accounts of a project
// @Tags bank-details
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.BankDetailResponse
// @Security BearerAuth
// @Router /projects/{id}/bank-details [get]
func (h *projectDetailHandler) listBankDetails(c *gin.Context) {
	items, err := h.detailService.ListBankDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list bank details")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankDetailResponse(items))
}

// @Summary Add a bank account
// @Tags bank-details
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param bank body dto.CreateBankDetailRequest true "Bank account"
// @Success 201 {object} dto.BankDetailResponse
// @Security BearerAuth
// @Router /projects/{id}/bank-details [post]
func (h *projectDetailHandler) addBankDetail(c *gin.Context) {
	var req dto.CreateBankDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bank, err := h.detailService.AddBankDetail(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add bank detail")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankDetailResponse(bank))
}

// @Summary Update a bank account
// @Tags bank-details
// @Accept json
// @Produce json
// @Param id path string true "Bank detail ID"
// @Param bank body dto.UpdateBankDetailRequest true "Fields to change"
// @Success 200 {object} dto.BankDetailResponse
// @Security BearerAuth
// @Router /bank-details/{id} [put]
func (h *projectDetailHandler) updateBankDetail(c *gin.Context) {
	var req dto.UpdateBankDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bank, err := h.detailService.UpdateBankDetail(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update bank detail")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankDetailResponse(bank))
}

// @Summary Delete a bank account
// @Tags bank-details
// @Param id path string true "Bank detail ID"
// @Success 204
// @Security BearerAuth
// @Router /bank-details/{id} [delete]
func (h *projectDetailHandler) deleteBankDetail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.detailService.DeleteBankDetail(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete bank detail")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Amenities of a project
// @Tags amenities
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.AmenityResponse
// @Security BearerAuth
// @Router /projects/{id}/amenities [get]
func (h *projectDetailHandler) listAmenities(c *gin.Context) {
	items, err := h.detailService.ListAmenities(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list amenities")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAmenityResponse(items))
}

// @Summary Add an amenity
// @Tags amenities
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param amenity body dto.CreateAmenityRequest true "Amenity"
// @Success 201 {object} dto.AmenityResponse
// @Security BearerAuth
// @Router /projects/{id}/amenities [post]
func (h *projectDetailHandler) addAmenity(c *gin.Context) {
	var req dto.CreateAmenityRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	amenity, err := h.detailService.AddAmenity(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add amenity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAmenityResponse(amenity))
}

// @Summary Update an amenity
// @Tags amenities
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param amenity body dto.UpdateAmenityRequest true "Fields to change"
// @Success 200 {object} dto.AmenityResponse
// @Security BearerAuth
// @Router /amenities/{id} [put]
func (h *projectDetailHandler) updateAmenity(c *gin.Context) {
	var req dto.UpdateAmenityRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	amenity, err := h.detailService.UpdateAmenity(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update amenity")
		return
	}
	c.JSON(http.StatusOK, dto.ToAmenityResponse(amenity))
}

// @Summary Delete an amenity
// @Tags amenities
// @Param id path string true "Amenity ID"
// @Success 204
// @Security BearerAuth
// @Router /amenities/{id} [delete]
func (h *projectDetailHandler) deleteAmenity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.detailService.DeleteAmenity(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete amenity")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Documents of a project
// @Tags documents
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /projects/{id}/documents [get]
func (h *projectDetailHandler) listDocuments(c *gin.Context) {
	items, err := h.detailService.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(items))
}

// uploadDocument godoc
// @Summary Upload a document
// @Description Multipart upload with fields file, title and documentType (FloorPlan, BasementPlan or Other).
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "Document"
// @Param title formData string true "Title"
// @Param documentType formData string false "FloorPlan, BasementPlan or Other"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/documents [post]
func (h *projectDetailHandler) uploadDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectUpload(c, err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.rejectUpload(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	req.FileName = fileHeader.Filename
	req.ContentType = fileHeader.Header.Get("Content-Type")

	doc, err := h.detailService.UploadDocument(c.Request.Context(), c.Param("id"), req, file, userID)
	if err != nil {
		respondError(c, err, "Failed to upload document")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Document uploaded",
		slog.String("document_id", doc.DocumentID),
		slog.Int64("size_bytes", doc.SizeBytes))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

func (h *projectDetailHandler) rejectUpload(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, apperrors.NewAppError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", h.maxUploadBytes), err), "")
		return
	}
	if errors.Is(err, http.ErrMissingFile) {
		respondError(c, apperrors.Validationf("file is required"), "")
		return
	}
	respondError(c, apperrors.Validationf("%s", err.Error()), "")
}

// @Summary Download a document
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id}/file [get]
func (h *projectDetailHandler) downloadDocument(c *gin.Context) {
	doc, content, err := h.detailService.OpenDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to open document")
		return
	}
	defer content.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})
	c.DataFromReader(http.StatusOK, doc.SizeBytes, contentType, content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *projectDetailHandler) deleteDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.detailService.DeleteDocument(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
