package helpers

import (
	"context"
	"log"
	"mime/multipart"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadFile streams a multipart file to Cloudinary and returns its secure URL.
// resourceType is "image" for avatars/thumbnails and "video" for video files.
func UploadFile(file multipart.File, fileHeader *multipart.FileHeader, folder string, resourceType string) (string, error) {

	// Reset file pointer before upload
	file.Seek(0, 0)

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Println("Cloudinary init error:", err)
		return "", err
	}

	uploadResult, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: resourceType,
		PublicID:     fileHeader.Filename,
	})
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return "", err
	}

	return uploadResult.SecureURL, nil
}

// DeleteFile removes a previously uploaded file given the URL stored on the
// document. Failures are logged but returned to the caller to decide on.
func DeleteFile(fileURL string, resourceType string) error {
	if fileURL == "" {
		return nil
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Println("Cloudinary init error:", err)
		return err
	}

	_, err = cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID:     PublicIDFromURL(fileURL),
		ResourceType: resourceType,
	})
	if err != nil {
		log.Println("Cloudinary destroy error:", err)
	}
	return err
}

// PublicIDFromURL extracts the Cloudinary public id (last path segment without
// the format extension) from a delivery URL.
func PublicIDFromURL(fileURL string) string {
	segment := fileURL
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if idx := strings.LastIndex(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}
	return segment
}
