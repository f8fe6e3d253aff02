package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tygam/khaosat-server/models"
)

var (
	// ErrNotFound: id cần xoá không tồn tại.
	ErrNotFound = errors.New("bản ghi không tồn tại")
	// ErrQueryConfiguration: lọc theo ngày + sắp xếp theo created_at cần composite
	// index idx_responses_date_created_at. Thiếu index là lỗi cấu hình, trả nguyên văn
	// cho caller chứ không âm thầm bỏ filter.
	ErrQueryConfiguration = errors.New("thiếu composite index idx_responses_date_created_at cho truy vấn date + created_at; chạy lại migrate rồi thử lại")
)

const (
	DefaultLimit = 200
	MaxLimit     = 1000
)

// ResponseFilter là tham số truy vấn danh sách phản hồi.
// Date rỗng = không lọc ngày. Tìm theo từ khoá KHÔNG nằm ở tầng này (xem utils.FilterByKeyword).
type ResponseFilter struct {
	Date  string
	Limit int
}

type ResponseRepo struct {
	db *gorm.DB

	// kiểm tra một lần lúc khởi tạo, không query lại mỗi request
	hasDateIndex bool
}

func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{
		db:           db,
		hasDateIndex: db.Migrator().HasIndex(&models.SurveyResponse{}, "idx_responses_date_created_at"),
	}
}

// Create ghi một phản hồi mới. ID do tầng store gán (BeforeCreate), CreatedAt do DB gán.
func (r *ResponseRepo) Create(resp *models.SurveyResponse) error {
	return r.db.Create(resp).Error
}

// List trả về phản hồi mới nhất trước, cắt theo Limit.
// Có Date thì thêm điều kiện date = ?, và bắt buộc phải có composite index.
func (r *ResponseRepo) List(filter ResponseFilter) ([]models.SurveyResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := r.db.Model(&models.SurveyResponse{}).
		Order("created_at DESC").
		Limit(limit)

	if filter.Date != "" {
		if !r.hasDateIndex {
			return nil, ErrQueryConfiguration
		}
		q = q.Where("date = ?", filter.Date)
	}

	var responses []models.SurveyResponse
	if err := q.Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// Delete xoá hẳn một phản hồi. Không có soft-delete, không có audit log.
func (r *ResponseRepo) Delete(id string) error {
	tx := r.db.Delete(&models.SurveyResponse{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
