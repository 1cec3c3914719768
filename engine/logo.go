package engine

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"veckorapport/render"
)

// maxLogoSize bounds the embedded logo; it is stored inline with the project
const maxLogoSize = 2 << 20

// LoadLogo reads an image file and returns it as a base64 data URL
func LoadLogo(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: logo %s is a directory", ErrValidation, path)
	}
	if info.Size() > maxLogoSize {
		return "", fmt.Errorf("%w: logo is larger than %d bytes", ErrValidation, maxLogoSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", ErrValidation, path, contentType)
	}

	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	if _, err := render.DecodeLogo(dataURL); err != nil {
		return "", fmt.Errorf("%w: unsupported logo: %v", ErrValidation, err)
	}
	return dataURL, nil
}
