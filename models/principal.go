package models

// Principal là người đang đăng nhập trong phiên hiện tại (lấy từ token Google).
// Không lưu DB, sống theo request.
type Principal struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
