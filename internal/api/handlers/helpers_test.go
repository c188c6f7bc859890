package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"subtrack/internal/billing"
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid input", fmt.Errorf("%w: name is required", service.ErrInvalidInput), fiber.StatusBadRequest, "invalid input: name is required"},
		{"bad credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid credentials"},
		{"unknown user", service.ErrUserNotFound, fiber.StatusUnauthorized, "invalid credentials"},
		{"duplicate user", service.ErrUserExists, fiber.StatusConflict, "user already exists"},
		{"invalid transition", billing.ErrInvalidTransition, fiber.StatusConflict, billing.ErrInvalidTransition.Error()},
		{"missing subscription", service.ErrSubscriptionNotFound, fiber.StatusNotFound, "subscription not found"},
		{"missing recommendation", service.ErrRecommendationNotFound, fiber.StatusNotFound, "recommendation not found"},
		{"no assistant", service.ErrLLMUnavailable, fiber.StatusServiceUnavailable, service.ErrLLMUnavailable.Error()},
		{"unexpected", errors.New("connection reset"), fiber.StatusInternalServerError, "Failed to do it"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, zap.NewNop(), tc.err, "Failed to do it")
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body map[string]string
			require.NoError(t, json.Unmarshal(raw, &body))

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, body["error"])
		})
	}
}
