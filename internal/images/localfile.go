package images

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// blogImagesSubdir is where locally generated images land, relative to the
// configured public directory. The returned reference is site-relative so
// the frontend can serve it directly.
const blogImagesSubdir = "images/blogs"

// writeBlogImage persists raw image bytes under the public directory using
// the deterministic blog-<unixMillis>.<ext> naming convention and returns
// the site-relative path.
func writeBlogImage(publicDir string, data []byte, ext string) (string, error) {
	if ext == "" {
		ext = "png"
	}

	dir := filepath.Join(publicDir, blogImagesSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := fmt.Sprintf("blog-%d.%s", time.Now().UnixMilli(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/" + blogImagesSubdir + "/" + name, nil
}
