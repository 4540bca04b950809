package Models

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FCMToken stores a device token used for admin push notifications.
type FCMToken struct {
	gorm.Model
	Value string `json:"value" gorm:"size:512"`
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

// UpdateToken registers or refreshes the device token of the caller.
func UpdateToken(c *fiber.Ctx) error {
	var req UpdateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token value is required",
		})
	}

	var token FCMToken
	err := DB.Where("value = ?", req.Value).FirstOrCreate(&token, FCMToken{
		Value: req.Value,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token updated successfully",
		"token":   token,
	})
}
