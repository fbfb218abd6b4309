package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"dorpon-store/config"
	"dorpon-store/logger"
	"dorpon-store/models"
	"dorpon-store/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WebhookController struct {
	users repositories.UserStore
}

func NewWebhookController(users repositories.UserStore) *WebhookController {
	return &WebhookController{users: users}
}

func verifySignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// @Summary Identity sync webhook
// @Description Consume identity-provider user lifecycle events
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "HMAC-SHA256 of the body"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /webhooks/identity [post]
func (ctrl *WebhookController) HandleIdentityEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Failed to read body"})
		return
	}

	if !verifySignature(body, c.GetHeader("X-Webhook-Signature"), config.AppConfig.WebhookSecret) {
		c.JSON(401, gin.H{"success": false, "message": "Invalid webhook signature"})
		return
	}

	// The event source is fire-and-forget: from here on failures are
	// reported to the logger, never to the provider.
	ctrl.processEvent(c, body)

	c.JSON(200, gin.H{"success": true, "message": "Event processed"})
}

func (ctrl *WebhookController) processEvent(c *gin.Context, body []byte) {
	var event models.IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.Error("Malformed identity event", zap.Error(err))
		return
	}

	ctx := c.Request.Context()

	switch event.Type {
	case "user.created", "user.updated":
		user := &models.User{
			ID:       event.Data.ID,
			Email:    event.Data.PrimaryEmail(),
			Name:     strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName),
			ImageURL: event.Data.ImageURL,
		}
		if user.ID == "" {
			logger.Log.Error("Identity event without user id", zap.String("type", event.Type))
			return
		}
		if err := ctrl.users.Upsert(ctx, user); err != nil {
			logger.Log.Error("Failed to sync user",
				zap.String("type", event.Type),
				zap.String("user_id", user.ID),
				zap.Error(err))
			return
		}
		logger.Log.Info("User synced", zap.String("type", event.Type), zap.String("user_id", user.ID))

	case "user.deleted":
		err := ctrl.users.Delete(ctx, event.Data.ID)
		if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
			logger.Log.Error("Failed to delete user",
				zap.String("user_id", event.Data.ID),
				zap.Error(err))
			return
		}
		logger.Log.Info("User deleted", zap.String("user_id", event.Data.ID))

	default:
		logger.Log.Warn("Unhandled identity event", zap.String("type", event.Type))
	}
}
