package utils

import (
	"strings"

	"github.com/tygam/khaosat-server/models"
)

// searchPool ghép các trường tìm kiếm được của một phản hồi thành một chuỗi,
// bỏ trường rỗng, nối bằng khoảng trắng.
func searchPool(r models.SurveyResponse) string {
	fields := []string{
		r.Email,
		r.GoogleName,
		r.StudentName,
		r.ClassName,
		r.Teacher,
		r.Answers.TeachingPace,
		strings.Join(r.Answers.Attitudes, ", "),
		r.Answers.FixLevel,
		r.Answers.GeneralFeedback,
	}

	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

// FilterByKeyword lọc theo từ khoá trên trang kết quả ĐÃ tải về — không query lại store.
// Không phân biệt hoa thường, từ khoá rỗng (sau trim) trả nguyên danh sách.
func FilterByKeyword(responses []models.SurveyResponse, keyword string) []models.SurveyResponse {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return responses
	}

	matched := make([]models.SurveyResponse, 0, len(responses))
	for _, r := range responses {
		if strings.Contains(searchPool(r), kw) {
			matched = append(matched, r)
		}
	}
	return matched
}
