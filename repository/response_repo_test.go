package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tygam/khaosat-server/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.SurveyResponse{}, &models.ExportJob{}))
	return db
}

func mkResponse(email, date string, createdAt time.Time) models.SurveyResponse {
	return models.SurveyResponse{
		Email:     email,
		Teacher:   "Cô Vy",
		ClassName: "10A3",
		Answers:   models.Answers{FixLevel: "Ổn"},
		Date:      date,
		CreatedAt: createdAt,
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewResponseRepo(testDB(t))

	r := mkResponse("a@x.com", "2025-09-21", time.Time{})
	require.NoError(t, repo.Create(&r))

	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := repo.List(ResponseFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r.ID, got[0].ID)
	assert.Equal(t, "a@x.com", got[0].Email)
	assert.Equal(t, "Ổn", got[0].Answers.FixLevel)
}

func TestListOrderAndLimit(t *testing.T) {
	repo := NewResponseRepo(testDB(t))

	base := time.Date(2025, 9, 21, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := mkResponse("a@x.com", "2025-09-21", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(&r))
	}

	got, err := repo.List(ResponseFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// mới nhất trước
	for i := 1; i < len(got); i++ {
		assert.True(t, !got[i-1].CreatedAt.Before(got[i].CreatedAt))
	}
}

func TestListDateFilter(t *testing.T) {
	repo := NewResponseRepo(testDB(t))

	base := time.Date(2025, 9, 21, 8, 0, 0, 0, time.UTC)
	r1 := mkResponse("a@x.com", "2025-09-21", base)
	r2 := mkResponse("b@x.com", "2025-09-22", base.Add(time.Hour))
	require.NoError(t, repo.Create(&r1))
	require.NoError(t, repo.Create(&r2))

	got, err := repo.List(ResponseFilter{Date: "2025-09-21"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a@x.com", got[0].Email)

	got, err = repo.List(ResponseFilter{Date: "2025-01-01"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListLimitClamp(t *testing.T) {
	repo := NewResponseRepo(testDB(t))

	// limit <= 0 dùng mặc định, quá trần thì kẹp xuống trần; cả hai không được lỗi
	_, err := repo.List(ResponseFilter{Limit: 0})
	require.NoError(t, err)
	_, err = repo.List(ResponseFilter{Limit: MaxLimit + 1})
	require.NoError(t, err)
}

func TestListWithoutCompositeIndex(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Migrator().DropIndex(&models.SurveyResponse{}, "idx_responses_date_created_at"))

	repo := NewResponseRepo(db)

	// không lọc ngày thì vẫn chạy được
	_, err := repo.List(ResponseFilter{})
	require.NoError(t, err)

	// lọc ngày mà thiếu index là lỗi cấu hình, trả nguyên văn
	_, err = repo.List(ResponseFilter{Date: "2025-09-21"})
	assert.ErrorIs(t, err, ErrQueryConfiguration)
}

func TestDelete(t *testing.T) {
	repo := NewResponseRepo(testDB(t))

	r := mkResponse("a@x.com", "2025-09-21", time.Time{})
	require.NoError(t, repo.Create(&r))

	require.NoError(t, repo.Delete(r.ID))

	got, err := repo.List(ResponseFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// xoá id không tồn tại
	assert.ErrorIs(t, repo.Delete(r.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Delete("khong-co-id-nay"), ErrNotFound)
}
