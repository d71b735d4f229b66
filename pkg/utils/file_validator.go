package utils

import (
	"fmt"
	"mime/multipart"
	"slices"

	"sdo-ticketing/pkg/config"
	apperrors "sdo-ticketing/pkg/errors"
)

// ValidateUpload checks one uploaded file against the rules of an upload
// context: declared MIME type must be on the allow-list and the size must be
// under the cap. Mirrors the original portal's multer fileFilter + limits.
func ValidateUpload(fileHeader *multipart.FileHeader, cfg config.UploadConfig, contextName string) error {
	rules, ok := cfg.Contexts[contextName]
	if !ok {
		return fmt.Errorf("unknown upload context %q", contextName)
	}

	if rules.MaxSizeMB > 0 && fileHeader.Size > rules.MaxSizeMB*1024*1024 {
		return apperrors.Validation(map[string]string{
			fileHeader.Filename: fmt.Sprintf("file exceeds the %d MB limit", rules.MaxSizeMB),
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return apperrors.Validation(map[string]string{
			fileHeader.Filename: fmt.Sprintf("file type %q is not allowed", mimeType),
		})
	}

	return nil
}
