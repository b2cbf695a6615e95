package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/logger"
)

// ProfileImageDir is the subdirectory used for user profile images
const ProfileImageDir = "profile_images"

// allowedImageExts lists the accepted upload extensions, lower-case
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory on disk, served at /uploads
	baseURL  string // public prefix for stored files, e.g. http://localhost:8080/uploads
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; without it the returned paths are relative ("uploads/...").
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFileWithPath saves an image to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q", apperrors.ErrValidationFailed, ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, subPath)
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	rel := path.Join(filepath.ToSlash(subPath), uniqueFilename)
	accessiblePath := "uploads/" + rel
	if ls.baseURL != "" {
		accessiblePath = ls.baseURL + "/" + rel
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return accessiblePath, nil
}

// DeleteFile removes a stored file given the URL or path SaveFileWithPath returned.
// Missing files are not an error.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	physicalPath, err := ls.GetFullPath(fileURL)
	if err != nil {
		return err
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath maps a stored URL back to its location under basePath.
// Paths that would escape basePath are rejected.
func (ls *LocalStorage) GetFullPath(fileURL string) (string, error) {
	rel := fileURL
	switch {
	case ls.baseURL != "" && strings.HasPrefix(rel, ls.baseURL+"/"):
		rel = strings.TrimPrefix(rel, ls.baseURL+"/")
	case strings.HasPrefix(rel, "uploads/"):
		rel = strings.TrimPrefix(rel, "uploads/")
	default:
		return "", fmt.Errorf("file %q is not managed by this storage", fileURL)
	}

	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", fmt.Errorf("invalid file path: %s", fileURL)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
