package fiberlog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	newApp := func(cfg Config) *fiber.App {
		app := fiber.New()
		app.Use(New(cfg))
		app.Put("/workflow/:id/reject", func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusConflict).SendString(`{"status":"fail"}`)
		})
		app.Get("/workflow/:id", func(ctx *fiber.Ctx) error {
			return ctx.SendString(`{"status":"success"}`)
		})
		return app
	}

	t.Run(`request tags only by default`, func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newApp(Config{Logger: logger, Tags: RequestTags})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/workflow/7", nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "/workflow/7", entry.Data[TagPath])
		require.Equal(t, "/workflow/:id", entry.Data[TagRoute])
		require.Equal(t, fiber.StatusOK, entry.Data[TagStatus])
		require.NotContains(t, entry.Data, TagBody)
	})

	t.Run(`payload tags log failed responses at warn`, func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newApp(Config{Logger: logger, Tags: RequestTags}.WithPayload())

		req := httptest.NewRequest(http.MethodPut, "/workflow/7/reject", strings.NewReader(`{"comment":"no"}`))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, `{"comment":"no"}`, entry.Data[TagBody])
		require.Equal(t, `{"status":"fail"}`, entry.Data[TagResBody])
	})

	t.Run(`with payload does not touch the base tags`, func(t *testing.T) {
		base := Config{Tags: RequestTags}
		extended := base.WithPayload()
		require.Len(t, base.Tags, len(RequestTags))
		require.Len(t, extended.Tags, len(RequestTags)+len(PayloadTags))
	})
}
