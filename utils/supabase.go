package utils

import (
	"fmt"
	"os"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseEnabled: có cấu hình Supabase Storage hay không.
// Không cấu hình thì file export chỉ nằm trên đĩa server.
func SupabaseEnabled() bool {
	return os.Getenv("SUPABASE_URL") != "" && os.Getenv("SUPABASE_KEY") != ""
}

// UploadExportFile đẩy một file CSV đã xuất lên bucket "khaosat_exports"
// và trả về public URL để admin tải.
func UploadExportFile(localPath, objectName string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := "text/csv"
	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	objectPath := fmt.Sprintf("exports/%s", objectName)
	if _, err := storageClient.UploadFile("khaosat_exports", objectPath, f, options); err != nil {
		return "", err
	}

	publicURL := storageClient.GetPublicUrl("khaosat_exports", objectPath)
	return publicURL.SignedURL, nil
}
