package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService maps uploaded challenge files onto the local object store
// served under /uploads. Objects are namespaced by the question's source
// folder and tagged with team and question so organizers can browse them.
type StorageService struct {
	baseDir       string
	publicBaseURL string
}

func NewStorageService(baseDir, publicBaseURL string) *StorageService {
	return &StorageService{baseDir: baseDir, publicBaseURL: publicBaseURL}
}

// ObjectPath builds the bucket-relative path for one uploaded file.
func (s *StorageService) ObjectPath(src string, teamID, questionID uint, filename string) string {
	name := sanitizeFilename(filename)
	object := fmt.Sprintf("team-%d_qr-%d_%s_%s", teamID, questionID, uuid.New().String(), name)
	if src == "" {
		return object
	}
	return filepath.ToSlash(filepath.Join(src, object))
}

// DiskPath is where the object lives on disk; the parent directory is
// created on demand.
func (s *StorageService) DiskPath(objectPath string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	return full, nil
}

// PublicURL is the address recorded in the completion log.
func (s *StorageService) PublicURL(objectPath string) string {
	return s.publicBaseURL + "/uploads/" + objectPath
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "file"
	}
	return name
}
