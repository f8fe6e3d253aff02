package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tygam/khaosat-server/middleware"
	"github.com/tygam/khaosat-server/models"
	"github.com/tygam/khaosat-server/repository"
)

// POST /api/responses
// Một lượt submit = đúng một bản ghi. Không có idempotency key: học sinh gửi lại
// y nguyên câu trả lời thì ra bản ghi trùng, chấp nhận như vậy.
func SubmitResponse(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bạn chưa đăng nhập!"})
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Dữ liệu gửi không hợp lệ: " + err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		// form phía client giữ nguyên để sửa rồi gửi lại
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	resp := req.ToResponse(p.Email, p.DisplayName, time.Now())
	if err := repository.Responses.Create(&resp); err != nil {
		log.Errorf("submit response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu phản hồi: " + err.Error()})
		return
	}

	// 201 = client reset form và báo đã gửi
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Đã gửi khảo sát! Cảm ơn bạn ❤️",
		"response": resp,
	})
}
