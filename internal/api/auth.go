package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const authTokenTTL = 7 * 24 * time.Hour

type loginInput struct {
	Password string `json:"password"`
}

type accessClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Login exchanges the configured access password for a bearer token. When no
// password is configured the install is open and login is unnecessary.
func (handler *Handler) Login(c *fiber.Ctx) error {
	settings, err := handler.settings.LoadSettings()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	if settings.AccessPasswordHash == "" {
		return c.JSON(fiber.Map{"token": "", "guarded": false})
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.settings.VerifyAccessPassword(settings.AccessPasswordHash, input.Password); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid password")
	}

	now := time.Now()
	claims := accessClaims{
		Purpose: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign token")
	}

	return c.JSON(fiber.Map{"token": token, "guarded": true})
}

// AuthRequired verifies the bearer token when an access password is set;
// unguarded installs pass through.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	settings, err := handler.settings.LoadSettings()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	if settings.AccessPasswordHash == "" {
		return c.Next()
	}

	raw := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing token")
	}

	claims := accessClaims{}
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !parsed.Valid || claims.Purpose != "access" {
		return apiError(c, fiber.StatusUnauthorized, "invalid token")
	}

	return c.Next()
}
