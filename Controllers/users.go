package Controllers

import (
	"strconv"
	"strings"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UpdateUserRequest struct {
	ID         uint   `json:"id" validate:"required"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Permission *int   `json:"permission"`
	IsApproved *bool  `json:"is_approved"`
}

// FetchUsers lists all accounts. Admin only.
func FetchUsers(c *fiber.Ctx) error {
	var users []Models.User
	if err := Models.DB.Order("name ASC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve users",
		})
	}

	response := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		response = append(response, userResponse(user))
	}
	return c.JSON(response)
}

// UpdateUser edits an existing account. Admin only.
func UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID is required",
		})
	}

	var user Models.User
	if err := Models.DB.First(&user, req.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to hash password",
			})
		}
		user.Password = hash
	}
	if req.Permission != nil {
		user.Permission = *req.Permission
	}
	if req.IsApproved != nil {
		user.IsApproved = *req.IsApproved
	}

	if err := Models.DB.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A user with this email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    userResponse(user),
	})
}

// DeleteUser removes an account. Admin only.
func DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	var user Models.User
	if err := Models.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	caller, ok := c.Locals("user").(Models.User)
	if ok && caller.ID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You cannot delete your own account",
		})
	}

	Models.DB.Delete(&user)

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// isUniqueViolation detects uniqueness errors across the supported drivers.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate entry")
}
