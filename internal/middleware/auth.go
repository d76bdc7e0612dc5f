package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wisdomgraph/backend/internal/config"
	"github.com/wisdomgraph/backend/internal/dto"
	"github.com/wisdomgraph/backend/internal/models"
	"github.com/wisdomgraph/backend/internal/services"
)

// JWTProtected rejects requests without a valid, unexpired HS256 bearer token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// ResolveUser runs after JWTProtected and resolves the token subject to a
// live user record. A well-signed token whose subject no longer exists gets
// the same 401 as an invalid token.
func ResolveUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := subjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid token",
			})
		}

		user, err := authService.CurrentUser(id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: user not found",
			})
		}

		c.Locals("current_user", user)
		return c.Next()
	}
}

// CurrentUser returns the user record stored by ResolveUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("current_user").(*models.User)
	if !ok {
		return nil, errors.New("no user in context")
	}
	return user, nil
}

func subjectID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
