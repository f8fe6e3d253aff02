package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// Nhận diện in-app browser (Messenger/IG/Zalo/TikTok/Twitter webview...).
// Google chặn đăng nhập trong các webview này nên từ chối ngay từ đầu,
// kèm hướng dẫn mở bằng trình duyệt ngoài, thay vì để luồng OAuth fail ngầm.
var inAppBrowserRe = regexp.MustCompile(`(?i)(fban|fbav|fb_iab|instagram|line|zalo|tiktok|twitter|wv)`)

func IsInAppBrowser(userAgent string) bool {
	return inAppBrowserRe.MatchString(userAgent)
}

// BlockInAppBrowser gắn vào các route bắt đầu đăng nhập Google.
func BlockInAppBrowser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsInAppBrowser(c.GetHeader("User-Agent")) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Bạn đang mở trong ứng dụng (Messenger/Zalo/Instagram…). Google chặn đăng nhập ở đây. Vui lòng mở bằng trình duyệt ngoài (Safari/Chrome) rồi thử lại.",
			})
			return
		}
		c.Next()
	}
}
