package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/safezone/internal/features/reports"
	"github.com/xyz-asif/safezone/internal/features/zones"
	"github.com/xyz-asif/safezone/internal/pkg/pagination"
	"github.com/xyz-asif/safezone/internal/pkg/response"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

// Handler exposes moderation endpoints over reports and danger zones.
type Handler struct {
	reports *reports.Repository
	zones   *zones.Repository
}

func NewHandler(reportsRepo *reports.Repository, zonesRepo *zones.Repository) *Handler {
	return &Handler{reports: reportsRepo, zones: zonesRepo}
}

// @Summary List incident reports for moderation
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Security BearerAuth
// @Success 200 {object} response.PaginatedResponse
// @Router /admin/reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	p := pagination.New(page, limit, 0)

	result, total, err := h.reports.List(c.Request.Context(), p.Offset, p.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to list reports")
		return
	}
	if result == nil {
		result = []reports.Report{}
	}
	response.Paginated(c, result, total, p.Limit, p.Page)
}

// @Summary Mark a report as verified
// @Tags admin
// @Produce json
// @Param id path string true "Report ID"
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/reports/{id}/verify [patch]
func (h *Handler) VerifyReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report id", "INVALID_ID")
		return
	}

	if err := h.reports.SetVerified(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Report not found", "REPORT_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to verify report")
		return
	}
	response.Success(c, gin.H{"verified": true})
}

// @Summary List all danger zones, including inactive ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]zones.DangerZone}
// @Router /admin/zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	result, err := h.zones.List(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, "Failed to list zones")
		return
	}
	if result == nil {
		result = []zones.DangerZone{}
	}
	response.Success(c, result)
}

// @Summary Deactivate a danger zone
// @Description The zone stops matching location checks but keeps its report history, so new reports in the area can reactivate it.
// @Tags admin
// @Produce json
// @Param id path string true "Zone ID"
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/zones/{id} [delete]
func (h *Handler) DeactivateZone(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid zone id", "INVALID_ID")
		return
	}

	if err := h.zones.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Zone not found", "ZONE_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to deactivate zone")
		return
	}
	response.Success(c, gin.H{"active": false})
}
