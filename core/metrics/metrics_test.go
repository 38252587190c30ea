package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver(t *testing.T) {
	m := New()

	m.ObserveTable("sample", 404)
	m.ObserveLookup("sample", "hit")
	m.ObserveLookup("sample", "hit")
	m.ObserveLookup("sample", "miss")
	m.ObserveStage("load", 2*time.Second)

	assert.Equal(t, float64(404), testutil.ToFloat64(m.TableRows.WithLabelValues("sample")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LookupsTotal.WithLabelValues("sample", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LookupsTotal.WithLabelValues("sample", "miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
}

func TestHandlerAndMiddleware(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/tables/:table", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/tables/weather", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/tables/:table", "4xx")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "nuscenes_http_requests_total")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "2xx", statusLabel(200))
	assert.Equal(t, "3xx", statusLabel(304))
	assert.Equal(t, "4xx", statusLabel(409))
	assert.Equal(t, "5xx", statusLabel(500))
}
