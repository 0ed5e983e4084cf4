package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/notification"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/utilities"
)

// NotificationController handles notification related endpoints
type NotificationController struct {
	Dispatcher *notification.Dispatcher
}

// NewNotificationController creates a new instance of NotificationController.
func NewNotificationController(dispatcher *notification.Dispatcher) *NotificationController {
	return &NotificationController{Dispatcher: dispatcher}
}

// GetNotificationsHandler returns the caller's notifications, newest first.
// @Summary List the caller's notifications
// @Description Any authenticated user can access this endpoint
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Notification "Notifications, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [get]
func (nc *NotificationController) GetNotificationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	notifications, err := nc.Dispatcher.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve notifications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
