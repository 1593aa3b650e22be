package service

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"chocolate-storefront/internal/config"

	"github.com/google/uuid"
)

type UploadService interface {
	SaveMultipart(file *multipart.FileHeader) (string, error)
	// SaveBase64 accepts raw base64 or a data: URL and returns the public
	// URL path.
	SaveBase64(fileName, data string) (string, error)
}

type uploadServiceImpl struct {
	dir     string
	baseURL string
}

func NewUploadService(cfg config.Uploads) UploadService {
	return &uploadServiceImpl{
		dir:     cfg.Dir,
		baseURL: cfg.BaseURL,
	}
}

func (s *uploadServiceImpl) SaveMultipart(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := s.write(name, src); err != nil {
		return "", err
	}

	return path.Join(s.baseURL, name), nil
}

func (s *uploadServiceImpl) SaveBase64(fileName, data string) (string, error) {
	ext := ".png"
	if fileName != "" {
		if e := filepath.Ext(fileName); e != "" {
			ext = e
		}
	}

	// data:image/png;base64,AAAA...
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode base64 upload: %w", err)
	}

	name := uuid.NewString() + ext
	if err := s.write(name, strings.NewReader(string(decoded))); err != nil {
		return "", err
	}

	return path.Join(s.baseURL, name), nil
}

func (s *uploadServiceImpl) write(name string, src io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}

	return nil
}
