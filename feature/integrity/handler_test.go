package integrity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/nusc/nusctest"
	"nuscenes-devkit/core/token"
	"nuscenes-devkit/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingSnapshots struct{ err error }

func (f failingSnapshots) Get(context.Context, string, string) (*nusc.Tables, error) {
	return nil, f.err
}

func setupTestApp(t *testing.T, d *nusctest.Dataset, log *zap.Logger) *fiber.App {
	t.Helper()
	cache := nusc.NewCache(0, nusc.WithWorkers(2))
	app := fiber.New()
	require.NoError(t, NewFeature(cache, nusctest.Version, d.Write(t), log).Load(app))
	return app
}

func getReport(t *testing.T, app *fiber.App, wantStatus int) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleIntegrityCheck_Clean(t *testing.T) {
	app := setupTestApp(t, nusctest.New(nusctest.Options{}), zap.NewNop())

	body := getReport(t, app, fiber.StatusOK)

	assert.Equal(t, nusctest.Version, body["version"])
	assert.Equal(t, checks.StatusOK, body["status"])
	assert.EqualValues(t, 0, body["issues"])
	assert.Len(t, body["checks"], len(checks.All()))
	assert.NotEmpty(t, body["execution_time"])
}

func TestHandleIntegrityCheck_Broken(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 3})
	d.Samples[1].Next = token.None
	core, logs := observer.New(zap.WarnLevel)
	app := setupTestApp(t, d, zap.New(core))

	body := getReport(t, app, fiber.StatusOK)

	assert.Equal(t, checks.StatusFailed, body["status"])
	assert.EqualValues(t, 2, body["issues"])
	first := body["checks"].([]any)[0].(map[string]any)
	assert.Equal(t, "scene_chains", first["name"])
	assert.Equal(t, checks.StatusFailed, first["status"])
	assert.Equal(t, 1, logs.FilterMessage("Integrity issues found").Len())
}

func TestHandleIntegrityCheck_OpenFailure(t *testing.T) {
	svc := NewService(failingSnapshots{err: nusc.ErrDatasetNotFound}, "v1.0-mini", "/nowhere", zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	body := getReport(t, app, fiber.StatusInternalServerError)
	assert.Contains(t, body["error"], "open dataset v1.0-mini")
}

func TestService_Run(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	cache := nusc.NewCache(0)
	root := d.Write(t)
	svc := NewService(cache, nusctest.Version, root, zap.NewNop())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, root, report.Dataroot)
	assert.Equal(t, checks.StatusOK, report.Status)

	boom := errors.New("boom")
	_, err = NewService(failingSnapshots{err: boom}, "v", "r", zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFeature(t *testing.T) {
	f := NewFeature(nusc.NewCache(0), "v", "r", zap.NewNop())
	assert.Equal(t, "integrity", f.Name())
	assert.True(t, f.IsEnabled())
}
