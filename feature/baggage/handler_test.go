package baggage

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-manager/feature/baggage/models"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()

	svc, _ := newTestService(t)

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	_, err = rec.Body.ReadFrom(resp.Body)
	require.NoError(t, err)
	return rec
}

func TestHandleScan(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("first scan is created", func(t *testing.T) {
		rec := postJSON(t, app, "/baggage/scan", ScanInput{Tag: "ET1234567890"})
		assert.Equal(t, fiber.StatusCreated, rec.Code)

		var bag models.ScannedBaggage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bag))
		assert.Equal(t, "ET1234567890", bag.TagValue)
		assert.Equal(t, models.StatusScanned, bag.Status)
	})

	t.Run("second scan returns the existing row", func(t *testing.T) {
		rec := postJSON(t, app, "/baggage/scan", ScanInput{Tag: "ET1234567890"})
		assert.Equal(t, fiber.StatusOK, rec.Code)
	})

	t.Run("missing tag rejected", func(t *testing.T) {
		rec := postJSON(t, app, "/baggage/scan", ScanInput{})
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	})
}

func TestHandleUnreconciled(t *testing.T) {
	app, _ := newTestApp(t)

	rec := postJSON(t, app, "/baggage/scan", ScanInput{Tag: "ET1234567890"})
	require.Equal(t, fiber.StatusCreated, rec.Code)

	req := httptest.NewRequest(fiber.MethodGet, "/baggage/unreconciled", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bags []models.ScannedBaggage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bags))
	require.Len(t, bags, 1)
}

func TestHandleRush(t *testing.T) {
	app, _ := newTestApp(t)

	rec := postJSON(t, app, "/baggage/scan", ScanInput{Tag: "ET1234567890"})
	require.Equal(t, fiber.StatusCreated, rec.Code)

	t.Run("invalid id", func(t *testing.T) {
		rec := postJSON(t, app, "/baggage/nope/rush", nil)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	})

	t.Run("mark and cancel", func(t *testing.T) {
		rec := postJSON(t, app, "/baggage/1/rush", fiber.Map{"user_id": "agent-1"})
		assert.Equal(t, fiber.StatusOK, rec.Code)

		req := httptest.NewRequest(fiber.MethodDelete, "/baggage/1/rush?target=scanned", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("cancel requires a target", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodDelete, "/baggage/1/rush", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
