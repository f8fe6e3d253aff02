package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tygam/khaosat-server/models"
)

// CSVHeader cố định 13 cột, giữ nguyên thứ tự cũ để file cũ/mới đối chiếu được.
var CSVHeader = []string{
	"Date",
	"Email",
	"GoogleName",
	"StudentName",
	"ClassName",
	"Teacher",
	"TeachingPace",
	"TeachingPaceNote",
	"Attitudes",
	"AttitudeNote",
	"FixLevel",
	"FixNote",
	"GeneralFeedback",
}

// CSVRow chuyển một phản hồi thành một dòng CSV.
// Attitudes nối bằng "; ", xuống dòng trong góp ý thay bằng khoảng trắng
// trước khi qua quote chuẩn của encoding/csv.
func CSVRow(r models.SurveyResponse) []string {
	return []string{
		r.Date,
		r.Email,
		r.GoogleName,
		r.StudentName,
		r.ClassName,
		r.Teacher,
		r.Answers.TeachingPace,
		r.Answers.TeachingPaceNote,
		strings.Join(r.Answers.Attitudes, "; "),
		r.Answers.AttitudeNote,
		r.Answers.FixLevel,
		r.Answers.FixNote,
		strings.ReplaceAll(r.Answers.GeneralFeedback, "\n", " "),
	}
}

// WriteResponsesCSV ghi header + từng dòng ra w (UTF-8, quote kiểu RFC 4180).
func WriteResponsesCSV(w io.Writer, responses []models.SurveyResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range responses {
		if err := cw.Write(CSVRow(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFileName đặt tên file theo filter ngày đang bật; không lọc ngày thì là "all".
func ExportFileName(date string) string {
	if date == "" {
		return "responses_all.csv"
	}
	return fmt.Sprintf("responses_%s.csv", date)
}
