package controllers

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tygam/khaosat-server/config"
	"github.com/tygam/khaosat-server/middleware"
	"github.com/tygam/khaosat-server/models"
	"github.com/tygam/khaosat-server/repository"
)

// setupTestEnv dựng DB sqlite tạm và trỏ các global (config.DB, repository)
// vào đó, đúng cách main làm lúc boot.
func setupTestEnv(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.SurveyResponse{}, &models.ExportJob{}))

	config.DB = db
	repository.Init(db)
	return db
}

// asPrincipal giả lập AuthJWT đã chạy xong: inject thẳng principal vào context.
func asPrincipal(email, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxPrincipal, models.Principal{Email: email, DisplayName: name})
	}
}
