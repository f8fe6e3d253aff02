package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tygam/khaosat-server/middleware"
	"github.com/tygam/khaosat-server/repository"
	"github.com/tygam/khaosat-server/utils"
)

type GoogleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

func appURL() string {
	if u := os.Getenv("APP_URL"); u != "" {
		return u
	}
	return "http://localhost:5173"
}

// resolveTarget: admin vào /admin, còn lại vào /survey.
// Tra bảng admins ngay tại thời điểm đăng nhập, không cache.
func resolveTarget(email string) (string, error) {
	isAdmin, err := repository.Admins.IsAdmin(email)
	if err != nil {
		return "", err
	}
	if isAdmin {
		return "/admin", nil
	}
	return "/survey", nil
}

// POST /api/auth/google
// Luồng "popup": client đã có ID token Google, server xác minh rồi phát phiên.
func GoogleLogin(c *gin.Context) {
	var req GoogleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	gu, err := utils.VerifyGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		// lỗi provider nào cũng trả một lần, không retry
		log.Errorf("google login: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Không thể đăng nhập. Vui lòng thử lại!"})
		return
	}

	token, err := utils.GenerateSessionToken(gu.Email, gu.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được phiên đăng nhập"})
		return
	}

	target, err := resolveTarget(gu.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không kiểm tra được quyền: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"email":       gu.Email,
			"displayName": gu.Name,
		},
		"target": target,
	})
}

// GET /api/auth/google/url
// Luồng "redirect" (popup bị chặn): trả URL consent của Google kèm state ký sẵn.
func GoogleAuthURL(c *gin.Context) {
	conf, err := utils.GoogleOAuthConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": conf.AuthCodeURL(state)})
}

// GET /api/auth/google/callback?code=...&state=...
// Bước finalize duy nhất của luồng redirect. Idempotent: không có gì pending
// (thiếu code/state) thì 204 và không làm gì. Lỗi provider ở bước này chỉ log
// rồi đưa về trang login — người dùng đăng nhập lại là xong.
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" && state == "" {
		c.Status(http.StatusNoContent)
		return
	}

	if err := utils.VerifyStateToken(state); err != nil {
		log.Errorf("redirect result error: %v", err)
		c.Redirect(http.StatusFound, appURL()+"/login")
		return
	}

	gu, err := utils.ExchangeGoogleCode(c.Request.Context(), code)
	if err != nil {
		log.Errorf("redirect result error: %v", err)
		c.Redirect(http.StatusFound, appURL()+"/login")
		return
	}

	token, err := utils.GenerateSessionToken(gu.Email, gu.Name)
	if err != nil {
		log.Errorf("redirect result error: %v", err)
		c.Redirect(http.StatusFound, appURL()+"/login")
		return
	}

	target, err := resolveTarget(gu.Email)
	if err != nil {
		log.Errorf("redirect result error: %v", err)
		c.Redirect(http.StatusFound, appURL()+"/login")
		return
	}

	c.Redirect(http.StatusFound, appURL()+"/login?token="+token+"&target="+target)
}

// GET /api/me
// Cho client quyết định điều hướng: chưa đăng nhập → login (401 từ middleware),
// admin → /admin, còn lại → /survey. Trong lúc request đang chạy client cứ
// hiển thị "đang kiểm tra quyền", không render nội dung bảo vệ trước.
func Me(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "target": "/login"})
		return
	}

	target, err := resolveTarget(p.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không kiểm tra được quyền: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     p,
		"is_admin": target == "/admin",
		"target":   target,
	})
}
