package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Các lựa chọn cố định của form khảo sát (khớp với form trên client).
var (
	TeacherOptions  = []string{"Cô Gấm", "Cô Vy", "Cô Hà"}
	PaceOptions     = []string{"Rất nhanh", "Nhanh", "Vừa phải", "Chậm"}
	AttitudeOptions = []string{"Tệ", "Hơi tệ", "Ổn", "Bình thường", "Good", "Em thích cô này", "Vui vẻ"}
	FixOptions      = []string{"Kỹ", "Bình thường", "Ổn", "Rất kỹ"}
)

// Answers là phần câu trả lời của một phản hồi. Schema cố định,
// validate một lần lúc gửi, không null-check lắt nhắt lúc đọc.
type Answers struct {
	TeachingPace     string   `json:"teachingPace"`
	TeachingPaceNote string   `json:"teachingPaceNote"`
	Attitudes        []string `json:"attitudes"`
	AttitudeNote     string   `json:"attitudeNote"`
	FixLevel         string   `json:"fixLevel"`
	FixNote          string   `json:"fixNote"`
	GeneralFeedback  string   `json:"generalFeedback"`
}

// SurveyResponse là một lượt khảo sát đã gửi. Tạo một lần, chỉ có thể bị
// admin xoá hẳn, không bao giờ update.
type SurveyResponse struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email       string    `gorm:"column:email;size:255;not null" json:"email"`
	GoogleName  string    `gorm:"column:google_name;size:255" json:"googleName"`
	StudentName string    `gorm:"column:student_name;size:255" json:"studentName"`
	Teacher     string    `gorm:"column:teacher;size:100;not null" json:"teacher"`
	ClassName   string    `gorm:"column:class_name;size:100;not null" json:"className"`
	Answers     Answers   `gorm:"column:answers;type:text;serializer:json" json:"answers"`
	Date        string    `gorm:"column:date;size:10;index:idx_responses_date_created_at,priority:1" json:"date"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index:idx_responses_date_created_at,priority:2,sort:desc" json:"createdAt"`
}

func (SurveyResponse) TableName() string {
	return "responses"
}

// BeforeCreate gán ID kiểu document-id, client không bao giờ tự đặt.
func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// SubmitRequest là payload gửi khảo sát từ client.
type SubmitRequest struct {
	StudentName string  `json:"studentName"`
	Teacher     string  `json:"teacher"`
	ClassName   string  `json:"className"`
	Answers     Answers `json:"answers"`
}

var (
	// ErrThieuThongTin: chưa chọn giáo viên / lớp / chưa trả lời mục nào.
	ErrThieuThongTin = errors.New("Vui lòng chọn giáo viên, điền lớp và trả lời ít nhất một mục trước khi gửi.")
	// ErrGiaTriNgoaiDanhSach: giá trị gửi lên không nằm trong các lựa chọn cố định.
	ErrGiaTriNgoaiDanhSach = errors.New("Câu trả lời không nằm trong danh sách lựa chọn.")
)

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// Validate kiểm tra đúng rule của form:
// bắt buộc có giáo viên + lớp, và ít nhất một trong 3 câu hỏi hoặc góp ý tự do.
// Các giá trị enum phải thuộc danh sách cố định.
func (req *SubmitRequest) Validate() error {
	if req.Teacher == "" ||
		strings.TrimSpace(req.ClassName) == "" ||
		(req.Answers.TeachingPace == "" &&
			len(req.Answers.Attitudes) == 0 &&
			req.Answers.FixLevel == "" &&
			strings.TrimSpace(req.Answers.GeneralFeedback) == "") {
		return ErrThieuThongTin
	}

	if !contains(TeacherOptions, req.Teacher) {
		return ErrGiaTriNgoaiDanhSach
	}
	if req.Answers.TeachingPace != "" && !contains(PaceOptions, req.Answers.TeachingPace) {
		return ErrGiaTriNgoaiDanhSach
	}
	for _, a := range req.Answers.Attitudes {
		if !contains(AttitudeOptions, a) {
			return ErrGiaTriNgoaiDanhSach
		}
	}
	if req.Answers.FixLevel != "" && !contains(FixOptions, req.Answers.FixLevel) {
		return ErrGiaTriNgoaiDanhSach
	}
	return nil
}

// ToResponse dựng bản ghi từ request đã validate + thông tin người đang đăng nhập.
// Date lấy theo đồng hồ lúc gửi, CreatedAt để store tự gán.
func (req *SubmitRequest) ToResponse(email, googleName string, now time.Time) SurveyResponse {
	return SurveyResponse{
		Email:       email,
		GoogleName:  googleName,
		StudentName: strings.TrimSpace(req.StudentName),
		Teacher:     req.Teacher,
		ClassName:   strings.TrimSpace(req.ClassName),
		Answers:     req.Answers,
		Date:        now.Format("2006-01-02"),
	}
}
