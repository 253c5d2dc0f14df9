package compare_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"license-reconciler/core/storage/mocks"
	"license-reconciler/feature/compare"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(svc *compare.Service) *fiber.App {
	app := fiber.New()
	compare.NewHandler(svc).RegisterRoutes(app)
	return app
}

func compareRequest(t *testing.T, files map[string][]byte, query string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, data := range files {
		part, err := w.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/compare/"+query, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestHandleCompare(t *testing.T) {
	svc := compare.NewService(nil, "", zap.NewNop(), "does/not/exist.json")
	app := newTestApp(svc)

	preEA := preEABytes(t,
		[]any{"A1", "LEGACY-PID", 5, "2024-06-01"},
	)
	cssm := cssmBytes(t,
		[]any{"A1", "NEW-SKU", 5, "2025-01-01"},
	)

	t.Run("json report", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea": preEA,
			"cssm":   cssm,
		}, ""), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report compare.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1, report.Summary.Total)
		assert.Equal(t, 1, report.Summary.NotFound)
		assert.False(t, report.Archived)
	})

	t.Run("uploaded sku_map overrides the table", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea":  preEA,
			"cssm":    cssm,
			"sku_map": []byte(`{"LEGACY-PID": "NEW-SKU"}`),
		}, ""), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report compare.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1, report.Summary.OK)
		assert.Equal(t, 0, report.Summary.NotFound)
	})

	t.Run("xlsx format streams the workbook", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea": preEA,
			"cssm":   cssm,
		}, "?format=xlsx"), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "compared.xlsx")

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("missing upload", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea": preEA,
		}, ""), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid sku_map upload", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea":  preEA,
			"cssm":    cssm,
			"sku_map": []byte("{broken"),
		}, ""), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unreadable workbook", func(t *testing.T) {
		resp, err := app.Test(compareRequest(t, map[string][]byte{
			"pre_ea": []byte("garbage"),
			"cssm":   cssm,
		}, ""), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestHandleListRuns(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "runs/a/compared.xlsx"}
	ch <- minio.ObjectInfo{Key: "runs/a/decisions.json"}
	close(ch)

	client := &mocks.Client{}
	client.On("ListObjects", mock.Anything, "runs-bucket", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	app := newTestApp(compare.NewService(client, "runs-bucket", zap.NewNop(), ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/compare/runs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var runs []compare.RunInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].RunID)
	assert.True(t, runs[0].HasWorkbook)
	assert.True(t, runs[0].HasLog)
}

func TestHandleRunArtifacts(t *testing.T) {
	client := &mocks.Client{}
	client.On("GetObject", mock.Anything, "runs-bucket", "runs/abc/decisions.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`[]`))), nil)
	client.On("RemoveObject", mock.Anything, "runs-bucket", "runs/abc/compared.xlsx", mock.Anything).Return(nil)
	client.On("RemoveObject", mock.Anything, "runs-bucket", "runs/abc/decisions.json", mock.Anything).Return(nil)

	app := newTestApp(compare.NewService(client, "runs-bucket", zap.NewNop(), ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/compare/runs/abc/log", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/compare/runs/abc", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	client.AssertExpectations(t)
}

func TestHandleRunWorkbook_NotFound(t *testing.T) {
	app := newTestApp(compare.NewService(nil, "", zap.NewNop(), ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/compare/runs/abc/workbook", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
