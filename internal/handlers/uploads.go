package handlers

import (
	"mime/multipart"

	"github.com/Avinash9006/InfinityPower/internal/services"
)

// openUpload converts a multipart file header into the service-layer
// upload value. The returned closer must be deferred by the handler.
func openUpload(fh *multipart.FileHeader) (*services.FileUpload, multipart.File, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     file,
	}, file, nil
}
