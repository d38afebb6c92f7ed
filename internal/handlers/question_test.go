package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"icebreaker-backend/internal/services"
	"icebreaker-backend/internal/ws"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newScanRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	questionService := services.NewQuestionService(db, services.NewScoreService(db, ws.NewHub()))
	handler := NewQuestionHandler(questionService, services.NewStorageService(t.TempDir(), "http://localhost:8080"))

	r := gin.New()
	r.POST("/api/v1/scan", handler.Scan)
	return r, mock
}

func postScan(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScan(t *testing.T) {
	r, mock := newScanRouter(t)

	rows := sqlmock.NewRows([]string{"id", "qn", "type", "points", "created_at"}).
		AddRow(7, []byte(`{"type":"INPUT","question":"What burns but gives no light?","answer":"Campfire"}`), "reward", 10, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_qr" WHERE id = \$1`).
		WithArgs("7", 1).
		WillReturnRows(rows)

	// The scan body names no team; resolution is team-independent.
	w := postScan(r, `{"code":"zocampbanfoo_7"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(7), payload["id"])
	assert.Equal(t, "INPUT", payload["kind"])
	assert.Equal(t, float64(10), payload["points"])
	assert.NotContains(t, payload, "answer", "the stored answer stays on the server")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanInvalidPrefix(t *testing.T) {
	r, mock := newScanRouter(t)

	w := postScan(r, `{"code":"bogus_7"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanUnknownQuestion(t *testing.T) {
	r, mock := newScanRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_qr" WHERE id = \$1`).
		WithArgs("999", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postScan(r, `{"code":"zocampbanfoo_999"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScanMissingCode(t *testing.T) {
	r, _ := newScanRouter(t)

	w := postScan(r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
