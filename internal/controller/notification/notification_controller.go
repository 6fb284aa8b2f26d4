package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Gradebook/internal/controller"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/service"
	"github.com/rs/zerolog/log"
)

// NotificationController serves the notification panel of the caller's
// dashboard session. Mutations never fail towards the caller: a backend error
// leaves the cached list untouched, and the current list is returned either way.
type NotificationController struct {
	registry *service.NotificationStoreRegistry
}

func NewNotificationController(registry *service.NotificationStoreRegistry) *NotificationController {
	return &NotificationController{registry: registry}
}

// GetNotifications godoc
// @Summary List cached notifications
// @Description Returns the session's cached notifications and unread count. The first call of a session loads them from the backend.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListDTO
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	store := c.store(ctx)
	if !store.Loaded() {
		if err := store.Fetch(ctx.Request.Context()); err != nil {
			controller.RespondError(ctx, "GetNotifications", "Failed to load notifications", err)
			return
		}
	}
	c.respond(ctx, store)
}

// RefreshNotifications godoc
// @Summary Reload notifications from the backend
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListDTO
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /notifications/refresh [post]
func (c *NotificationController) RefreshNotifications(ctx *gin.Context) {
	store := c.store(ctx)
	if err := store.Fetch(ctx.Request.Context()); err != nil {
		controller.RespondError(ctx, "RefreshNotifications", "Failed to load notifications", err)
		return
	}
	c.respond(ctx, store)
}

// MarkAsRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.NotificationListDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Notification ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id", "Notification ID")
	if !ok {
		return
	}
	store := c.store(ctx)
	store.MarkAsRead(ctx.Request.Context(), id)
	c.respond(ctx, store)
}

// MarkAllAsRead godoc
// @Summary Mark every notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListDTO
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Router /notifications/read-all [patch]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	store := c.store(ctx)
	store.MarkAllAsRead(ctx.Request.Context())
	c.respond(ctx, store)
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.NotificationListDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Notification ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id", "Notification ID")
	if !ok {
		return
	}
	store := c.store(ctx)
	store.Delete(ctx.Request.Context(), id)
	c.respond(ctx, store)
}

// EndSession godoc
// @Summary Log out of the dashboard session
// @Description Drops the session's cached notifications.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Missing bearer token"
// @Router /session [delete]
func (c *NotificationController) EndSession(ctx *gin.Context) {
	c.registry.Drop(controller.SessionKeyFrom(ctx))
	log.Info().Str("requestID", controller.RequestIDFrom(ctx)).Msg("EndSession: Session state dropped")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Session ended"})
}

func (c *NotificationController) store(ctx *gin.Context) *service.NotificationStore {
	return c.registry.For(controller.SessionKeyFrom(ctx))
}

func (c *NotificationController) respond(ctx *gin.Context, store *service.NotificationStore) {
	snapshot := store.Snapshot()
	resp := dto.NotificationListDTO{
		Data:        make([]dto.NotificationDTO, 0, len(snapshot.Items)),
		UnreadCount: snapshot.UnreadCount,
	}
	for _, n := range snapshot.Items {
		var nDTO dto.NotificationDTO
		if err := copier.Copy(&nDTO, &n); err != nil {
			log.Error().Err(err).Uint("notificationID", n.ID).Msg("Failed to copy Notification model to NotificationDTO")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Error preparing notifications response"})
			return
		}
		resp.Data = append(resp.Data, nDTO)
	}
	ctx.JSON(http.StatusOK, resp)
}
