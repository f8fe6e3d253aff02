package models

import "time"

// Admin là danh sách email được phép vào trang quản trị.
// Có dòng trong bảng = là admin, không có = không phải. Không lưu role ở chỗ khác.
type Admin struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email   string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	NgayTao time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"ngay_tao"`
}

func (Admin) TableName() string {
	return "admins"
}
