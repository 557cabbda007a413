package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadSize limits media uploads to 10 MB
const maxUploadSize = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
}

// UploadHandler stores media files on local disk under uploadDir and
// serves back their public URLs.
type UploadHandler struct {
	uploadDir string
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "File is required"})
	}

	if file.Size > maxUploadSize {
		return c.Status(400).JSON(fiber.Map{"message": "File exceeds the 10 MB limit"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return c.Status(400).JSON(fiber.Map{"message": "Only image and video files are allowed"})
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "File upload error"})
	}

	filename := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "File upload error"})
	}

	fileType := "image"
	if ext == ".mp4" {
		fileType = "video"
	}

	fileURL := fmt.Sprintf("%s://%s/uploads/%s", c.Protocol(), c.Hostname(), filename)
	return c.Status(201).JSON(fiber.Map{
		"message":   "File uploaded successfully!",
		"file_url":  fileURL,
		"file_type": fileType,
	})
}

func (h *UploadHandler) DeleteFile(c *fiber.Ctx) error {
	fileName := filepath.Base(c.Params("fileName")) // strip any path segments
	filePath := filepath.Join(h.uploadDir, fileName)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return c.Status(404).JSON(fiber.Map{"message": "File not found"})
	}

	if err := os.Remove(filePath); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete file"})
	}
	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}

func (h *UploadHandler) GetFiles(c *fiber.Ctx) error {
	entries, err := os.ReadDir(h.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON([]string{})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch files"})
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return c.JSON(files)
}
