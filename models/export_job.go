package models

import "time"

// ExportJob là một lượt xuất CSV chạy nền. Client poll theo job_id.
type ExportJob struct {
	JobID     string    `gorm:"column:job_id;primaryKey;size:36" json:"job_id"`
	Date      *string   `gorm:"column:date;size:10" json:"date,omitempty"`
	Keyword   string    `gorm:"column:keyword;size:255" json:"keyword,omitempty"`
	Limit     int       `gorm:"column:row_limit" json:"limit"`
	Status    string    `gorm:"column:status;size:20;default:'queued'" json:"status"` // queued, processing, done, failed
	FilePath  *string   `gorm:"column:file_path;type:text" json:"file_path,omitempty"`
	FileURL   *string   `gorm:"column:file_url;type:text" json:"file_url,omitempty"`
	ErrorMsg  *string   `gorm:"column:error_msg;type:text" json:"error_msg,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ExportJob) TableName() string {
	return "export_jobs"
}
