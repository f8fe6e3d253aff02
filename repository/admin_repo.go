package repository

import (
	"gorm.io/gorm"

	"github.com/tygam/khaosat-server/models"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// IsAdmin: có đúng email đó trong bảng admins hay không.
// Email rỗng trả false luôn, khỏi query. Kết quả không được cache ở đâu cả —
// quyền admin có thể đổi giữa hai phiên nên route nào cần là hỏi lại DB.
func (r *AdminRepo) IsAdmin(email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Global instances, gán trong main sau khi ConnectDB (cùng kiểu với config.DB).
var (
	Responses *ResponseRepo
	Admins    *AdminRepo
)

func Init(db *gorm.DB) {
	Responses = NewResponseRepo(db)
	Admins = NewAdminRepo(db)
}
