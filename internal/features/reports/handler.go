package reports

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/features/auth"
	"github.com/xyz-asif/safezone/internal/features/zones"
	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/pkg/cloudinary"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	"github.com/xyz-asif/safezone/internal/pkg/response"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

type Handler struct {
	repo   *Repository
	engine *zones.Engine
	media  *cloudinary.Service
}

// NewHandler wires the reports handler. media may be nil when Cloudinary is
// not configured; photo uploads then return 503.
func NewHandler(repo *Repository, engine *zones.Engine, media *cloudinary.Service) *Handler {
	return &Handler{repo: repo, engine: engine, media: media}
}

// @Summary Submit an incident report
// @Description Persists the report, then re-evaluates danger zones around it.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report details"
// @Security BearerAuth
// @Success 201 {object} response.SuccessResponse{data=CreateReportResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Description and coordinates are required", "INVALID_JSON")
		return
	}

	location := geo.NewPoint(*req.Lat, *req.Lng)
	if err := location.Validate(); err != nil {
		response.BadRequest(c, "Invalid coordinates", "INVALID_COORDINATES")
		return
	}

	report := &Report{
		ReporterID:  user.ID,
		Description: req.Description,
		Location:    location,
	}
	if err := h.repo.Create(c.Request.Context(), report); err != nil {
		response.DatabaseError(c, "Failed to save report")
		return
	}

	eval, err := h.engine.OnNewReport(c.Request.Context(), location)
	if err != nil {
		// The report is already stored; zone evaluation will be retried by
		// subsequent reports in the same area.
		logger.Error("zone evaluation failed for report %s: %v", report.ID.Hex(), err)
		eval = zones.Evaluation{}
	}

	response.Created(c, CreateReportResponse{Report: *report, Evaluation: eval})
}

// @Summary Check whether a location falls inside an active danger zone
// @Tags reports
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=zones.LocationCheck}
// @Failure 400 {object} response.ErrorResponse
// @Router /reports/check [get]
func (h *Handler) Check(c *gin.Context) {
	var query struct {
		Lat *float64 `form:"lat" binding:"required"`
		Lng *float64 `form:"lng" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "lat and lng query parameters are required", "MISSING_COORDINATES")
		return
	}

	check, err := h.engine.CheckLocation(c.Request.Context(), geo.NewPoint(*query.Lat, *query.Lng))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			response.BadRequest(c, "Invalid coordinates", "INVALID_COORDINATES")
			return
		}
		response.DatabaseError(c, "Failed to check location")
		return
	}

	response.Success(c, check)
}

// @Summary Attach an evidence photo to a report
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Report ID"
// @Param photo formData file true "Evidence photo (jpg, png, webp; max 10MB)"
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id}/photo [post]
func (h *Handler) UploadPhoto(c *gin.Context) {
	if h.media == nil {
		response.ServiceUnavailable(c, "Photo uploads are not configured", "UPLOADS_DISABLED")
		return
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report id", "INVALID_ID")
		return
	}

	report, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Report not found", "REPORT_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load report")
		return
	}
	if report.ReporterID != user.ID {
		response.Forbidden(c, "Only the reporter can attach a photo", "NOT_REPORTER")
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required", "MISSING_FILE")
		return
	}
	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded file", "UPLOAD_FAILED")
		return
	}
	defer file.Close()

	uploaded, err := h.media.UploadImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		response.InternalServerError(c, "Failed to upload photo", "UPLOAD_FAILED")
		return
	}

	if err := h.repo.SetPhotoURL(c.Request.Context(), id, uploaded.URL); err != nil {
		response.DatabaseError(c, "Failed to save photo URL")
		return
	}

	response.Success(c, gin.H{"photoUrl": uploaded.URL})
}
