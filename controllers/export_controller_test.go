package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tygam/khaosat-server/middleware"
	"github.com/tygam/khaosat-server/models"
	"github.com/tygam/khaosat-server/repository"
)

func exportJobRouter() *gin.Engine {
	r := gin.New()
	grp := r.Group("/api/admin", asPrincipal("admin@x.com", "Admin"), middleware.RequireAdmin())
	{
		grp.POST("/responses/export-jobs", CreateExportJob)
		grp.GET("/export-jobs/:job_id", GetExportJob)
	}
	return r
}

func createExportJob(t *testing.T, r *gin.Engine, body string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/responses/export-jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var accepted struct {
		JobID  string `json:"job_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.JobID)
	require.Equal(t, "queued", accepted.Status)
	return accepted.JobID
}

type exportJobStatus struct {
	Status string  `json:"status"`
	Error  *string `json:"error"`
}

// pollExportJob gọi GetExportJob tới khi job chạy nền xong (file đính kèm)
// hoặc chuyển sang failed.
func pollExportJob(t *testing.T, r *gin.Engine, jobID string) (*httptest.ResponseRecorder, exportJobStatus) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		w := doGet(r, "/api/admin/export-jobs/"+jobID)
		if w.Header().Get("Content-Disposition") != "" {
			return w, exportJobStatus{Status: "done"}
		}
		var st exportJobStatus
		if err := json.Unmarshal(w.Body.Bytes(), &st); err == nil && st.Status == "failed" {
			return w, st
		}
		require.True(t, time.Now().Before(deadline), "job không xong kịp: %s", w.Body.String())
		time.Sleep(10 * time.Millisecond)
	}
}

func TestExportJobLifecycle(t *testing.T) {
	db := setupTestEnv(t)
	t.Chdir(t.TempDir()) // ./exports nằm trong thư mục tạm của test
	seedAdmin(t, db, "admin@x.com")
	r := exportJobRouter()

	base := time.Date(2025, 9, 21, 8, 0, 0, 0, time.UTC)
	seedResponse(t, db, "a@x.com", "Nguyễn Văn A", "2025-09-21", base)
	seedResponse(t, db, "b@x.com", "Trần Thị B", "2025-09-22", base.Add(time.Minute))

	jobID := createExportJob(t, r, `{"date":"2025-09-21","limit":10}`)

	w, st := pollExportJob(t, r, jobID)
	require.Equal(t, "done", st.Status)

	// job xong trả thẳng file CSV, chỉ chứa dữ liệu của ngày đã lọc
	assert.Contains(t, w.Header().Get("Content-Disposition"), "export_"+jobID+".csv")
	body := w.Body.String()
	assert.Contains(t, body, "Date,Email,GoogleName")
	assert.Contains(t, body, "a@x.com")
	assert.NotContains(t, body, "b@x.com")
}

func TestExportJobKeywordFilter(t *testing.T) {
	db := setupTestEnv(t)
	t.Chdir(t.TempDir())
	seedAdmin(t, db, "admin@x.com")
	r := exportJobRouter()

	base := time.Date(2025, 9, 21, 8, 0, 0, 0, time.UTC)
	seedResponse(t, db, "a@x.com", "Nguyễn Văn A", "2025-09-21", base)
	seedResponse(t, db, "b@x.com", "Trần Thị B", "2025-09-21", base.Add(time.Minute))

	jobID := createExportJob(t, r, `{"q":"trần","limit":10}`)

	w, st := pollExportJob(t, r, jobID)
	require.Equal(t, "done", st.Status)
	assert.Contains(t, w.Body.String(), "b@x.com")
	assert.NotContains(t, w.Body.String(), "a@x.com")
}

func TestExportJobFailure(t *testing.T) {
	db := setupTestEnv(t)
	t.Chdir(t.TempDir())
	seedAdmin(t, db, "admin@x.com")

	// bỏ composite index rồi khởi tạo lại repo: lọc theo ngày sẽ ra lỗi cấu hình
	require.NoError(t, db.Migrator().DropIndex(&models.SurveyResponse{}, "idx_responses_date_created_at"))
	repository.Init(db)

	r := exportJobRouter()
	jobID := createExportJob(t, r, `{"date":"2025-09-21","limit":10}`)

	_, st := pollExportJob(t, r, jobID)
	require.Equal(t, "failed", st.Status)
	require.NotNil(t, st.Error)
	assert.Contains(t, *st.Error, "idx_responses_date_created_at")
}

func TestGetExportJobNotFound(t *testing.T) {
	db := setupTestEnv(t)
	seedAdmin(t, db, "admin@x.com")
	r := exportJobRouter()

	w := doGet(r, "/api/admin/export-jobs/khong-co-job-nay")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
