package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tygam/khaosat-server/repository"
	"github.com/tygam/khaosat-server/utils"
)

// parseListFilter đọc date / limit / q từ query string.
// limit sai hoặc thiếu thì dùng mặc định của repository.
func parseListFilter(c *gin.Context) (repository.ResponseFilter, string) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultLimit)))
	if err != nil {
		limit = repository.DefaultLimit
	}

	filter := repository.ResponseFilter{
		Date:  c.Query("date"),
		Limit: limit,
	}
	return filter, c.Query("q")
}

// GET /api/admin/responses?date=YYYY-MM-DD&limit=200&q=...
// Lấy trang mới nhất theo (date, limit) rồi mới lọc từ khoá trên trang đó —
// từ khoá không bao giờ query lại store, bản ghi ngoài limit không tìm thấy được
// cho tới khi nâng limit và fetch lại.
func ListResponses(c *gin.Context) {
	filter, keyword := parseListFilter(c)

	responses, err := repository.Responses.List(filter)
	if err != nil {
		if errors.Is(err, repository.ErrQueryConfiguration) {
			// lỗi cấu hình store, trả nguyên văn
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách phản hồi: " + err.Error()})
		return
	}

	filtered := utils.FilterByKeyword(responses, keyword)

	// echo lại filter đã trả lời để client bỏ qua reply cũ
	// khi người dùng đổi filter liên tục
	c.JSON(http.StatusOK, gin.H{
		"date":      filter.Date,
		"limit":     filter.Limit,
		"q":         keyword,
		"fetched":   len(responses),
		"total":     len(filtered),
		"responses": filtered,
	})
}

// DELETE /api/admin/responses/:id
func DeleteResponse(c *gin.Context) {
	id := c.Param("id")

	if err := repository.Responses.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bản ghi không tồn tại"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại: " + err.Error()})
		return
	}

	// client tự bỏ dòng khỏi bảng đang hiển thị, không cần fetch lại
	c.JSON(http.StatusOK, gin.H{"message": "Đã xoá thành công!", "id": id})
}
