package storage

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"maktabati_backend/internals/configs"
)

const (
	coverSubdir   = "books"
	maxCoverWidth = 800
	webpQuality   = 85
)

// CoverDir is where book cover files live. Created lazily on first write.
func CoverDir() string {
	return filepath.Join(configs.UploadDir, coverSubdir)
}

func CoverPath(filename string) string {
	return filepath.Join(CoverDir(), filename)
}

// SaveCover decodes the uploaded image, re-encodes it as webp and writes it
// under the cover dir with a generated filename. Returns the stored filename.
func SaveCover(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded cover: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode cover image: %w", err)
	}

	// Covers are display-only; cap the width to keep files small.
	if img.Bounds().Dx() > maxCoverWidth {
		img = imaging.Resize(img, maxCoverWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(CoverDir(), 0o755); err != nil {
		return "", fmt.Errorf("create cover dir: %w", err)
	}

	filename := uuid.New().String() + ".webp"
	out, err := os.Create(CoverPath(filename))
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		_ = os.Remove(CoverPath(filename))
		return "", fmt.Errorf("encode cover webp: %w", err)
	}

	log.Printf("[STORAGE] cover saved: %s (orig=%q size=%d)", filename, fh.Filename, fh.Size)
	return filename, nil
}

// DeleteCover removes a stored cover file. A missing file is not an error;
// the row is the source of truth, the file is replaceable.
func DeleteCover(filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(CoverPath(filename)); err != nil && !os.IsNotExist(err) {
		log.Printf("[STORAGE] delete cover %s failed: %v", filename, err)
	}
}

// ReplaceCover stores the new upload first, then deletes the old file, so a
// failed write never loses the existing cover.
func ReplaceCover(oldFilename string, fh *multipart.FileHeader) (string, error) {
	filename, err := SaveCover(fh)
	if err != nil {
		return "", err
	}
	DeleteCover(oldFilename)
	return filename, nil
}
