package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads user_id from c.Locals("user_id").
// 401 when not logged in, 400 when the value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "معرّف المستخدم في الرمز غير صالح")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "معرّف المستخدم في الرمز غير صالح")
	}
}

// GetUserNameFromToken reads the display name stored by the auth middleware.
// Empty string when the claim is absent; never an error, the name is only
// used for activity descriptions.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals("user_name").(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
