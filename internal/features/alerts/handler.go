package alerts

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/safezone/internal/features/auth"
	"github.com/xyz-asif/safezone/internal/geo"
	"github.com/xyz-asif/safezone/internal/pkg/response"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

type Handler struct {
	dispatcher *Dispatcher
	repo       *Repository
}

func NewHandler(dispatcher *Dispatcher, repo *Repository) *Handler {
	return &Handler{dispatcher: dispatcher, repo: repo}
}

// @Summary Trigger an SOS alert
// @Description Dispatches the alert to the given contacts and the police contact. Returns 201 even when some deliveries fail; the alert records who was reached.
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body TriggerSOSRequest true "Location and emergency contacts"
// @Security BearerAuth
// @Success 201 {object} response.SuccessResponse{data=SOSAlert}
// @Failure 400 {object} response.ErrorResponse
// @Router /alerts/sos [post]
func (h *Handler) TriggerSOS(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req TriggerSOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Coordinates and at least one contact are required", "INVALID_JSON")
		return
	}

	alert, err := h.dispatcher.Trigger(
		c.Request.Context(),
		user.ID,
		user.Name,
		geo.NewPoint(*req.Lat, *req.Lng),
		req.Contacts,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			response.BadRequest(c, "Invalid SOS request", "INVALID_INPUT")
			return
		}
		response.DatabaseError(c, "Failed to dispatch SOS alert")
		return
	}

	response.Created(c, alert)
}

// @Summary List the authenticated user's SOS alerts
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]SOSAlert}
// @Router /alerts [get]
func (h *Handler) ListMine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	result, err := h.repo.ListByUser(c.Request.Context(), user.ID, 50)
	if err != nil {
		response.DatabaseError(c, "Failed to load alerts")
		return
	}
	if result == nil {
		result = []SOSAlert{}
	}
	response.Success(c, result)
}
