package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tygam/khaosat-server/config"
	"github.com/tygam/khaosat-server/models"
	"github.com/tygam/khaosat-server/repository"
	"github.com/tygam/khaosat-server/utils"
)

// GET /api/admin/responses/export?date=&limit=&q=
// Xuất đúng danh sách ĐANG lọc (kể cả từ khoá), không phải toàn bộ dữ liệu.
func ExportResponsesCSV(c *gin.Context) {
	filter, keyword := parseListFilter(c)

	responses, err := repository.Responses.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	filtered := utils.FilterByKeyword(responses, keyword)

	var buf bytes.Buffer
	if err := utils.WriteResponsesCSV(&buf, filtered); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được file CSV: " + err.Error()})
		return
	}

	filename := utils.ExportFileName(filter.Date)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

type ExportJobRequest struct {
	Date    *string `json:"date,omitempty"`
	Keyword string  `json:"q"`
	Limit   int     `json:"limit"`
}

// POST /api/admin/responses/export-jobs
// Xuất chạy nền cho các lần kéo dữ liệu lớn; client poll theo job_id.
func CreateExportJob(c *gin.Context) {
	var req ExportJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload không hợp lệ"})
		return
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:   jobID,
		Date:    req.Date,
		Keyword: req.Keyword,
		Limit:   req.Limit,
		Status:  "queued",
	}
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được job"})
		return
	}

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /api/admin/export-jobs/:job_id
func GetExportJob(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job không tìm thấy"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	if job.Status == "done" {
		if job.FileURL != nil {
			c.Redirect(http.StatusFound, *job.FileURL)
			return
		}
		if job.FilePath != nil {
			c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

func failExportJob(job *models.ExportJob, err error) {
	em := err.Error()
	config.DB.Model(job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
}

// xử lý job xuất dữ liệu
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	filter := repository.ResponseFilter{Limit: job.Limit}
	if job.Date != nil {
		filter.Date = *job.Date
	}

	responses, err := repository.Responses.List(filter)
	if err != nil {
		failExportJob(&job, err)
		return
	}
	filtered := utils.FilterByKeyword(responses, job.Keyword)

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)
	outPath := path.Join(outDir, "export_"+job.JobID+".csv")

	f, err := os.Create(outPath)
	if err != nil {
		failExportJob(&job, err)
		return
	}

	if err := utils.WriteResponsesCSV(f, filtered); err != nil {
		f.Close()
		failExportJob(&job, err)
		return
	}
	f.Close()

	updates := map[string]interface{}{"status": "done", "file_path": outPath}

	// có cấu hình Supabase thì đẩy file lên cho admin tải qua URL public
	if utils.SupabaseEnabled() {
		if url, err := utils.UploadExportFile(outPath, utils.ExportFileName(filter.Date)); err != nil {
			log.Errorf("export job %s: upload supabase: %v", job.JobID, err)
		} else {
			updates["file_url"] = url
		}
	}

	config.DB.Model(&job).Updates(updates)
}
