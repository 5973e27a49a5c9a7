package utils

import (
	"context"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadProfileImage uploads a doctor's profile image to Cloudinary and
// returns the secure URL. Images are cropped to a square thumbnail.
func UploadProfileImage(ctx context.Context, file interface{}, publicID string) (string, error) {
	return upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "medconnect/doctors",
		Transformation: "c_thumb,w_200,h_200",
	})
}

// UploadReportFile uploads a medical report attachment (image or PDF)
// and returns the secure URL.
func UploadReportFile(ctx context.Context, file interface{}, publicID string) (string, error) {
	return upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "medconnect/reports",
	})
}

func upload(ctx context.Context, file interface{}, params uploader.UploadParams) (string, error) {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return "", err
	}
	resp, err := cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
