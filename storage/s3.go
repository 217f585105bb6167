package storage

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Cloudinary configuration via environment variables:
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET, CLOUDINARY_FOLDER (optional)

const MaxImageBytes = 5 * 1024 * 1024 // client-facing upload ceiling

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	ErrImageTooLarge   = errors.New("image exceeds the 5MB upload limit")
	ErrUnsupportedMIME = errors.New("unsupported image type, expected jpeg, png or webp")
)

func InitializeS3() {}

// ValidateBase64Image checks a "data:<mime>;base64,<payload>" data URL
// against the size and MIME rules and returns the MIME type and raw
// base64 payload.
func ValidateBase64Image(src string) (string, string, error) {
	if src == "" {
		return "", "", errors.New("empty image payload")
	}

	mime := "image/jpeg"
	payload := src
	if strings.HasPrefix(src, "data:") {
		comma := strings.Index(src, ",")
		if comma == -1 {
			return "", "", errors.New("malformed data URL")
		}
		header := src[len("data:"):comma]
		payload = src[comma+1:]
		if semi := strings.Index(header, ";"); semi != -1 {
			mime = header[:semi]
		} else {
			mime = header
		}
	}

	if !allowedImageMIMEs[mime] {
		return "", "", ErrUnsupportedMIME
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", errors.New("invalid base64 image payload")
	}
	if len(decoded) > MaxImageBytes {
		return "", "", ErrImageTooLarge
	}

	return mime, payload, nil
}

// UploadBase64Image validates the payload and performs a signed Cloudinary
// upload, returning the public URL of the stored image.
func UploadBase64Image(base64ImageSrc string, publicID string) (string, error) {
	mime, payload, err := ValidateBase64Image(base64ImageSrc)
	if err != nil {
		return "", err
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return "", errors.New("missing Cloudinary configuration")
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:"+mime+";base64,"+payload)
	form.Add("api_key", apiKey)
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}

	// Signed upload: Cloudinary requires a SHA1 over the sorted params + secret
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed with status %d: %s", res.StatusCode, string(body))
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", err
	}
	if uploaded.SecureURL != "" {
		return uploaded.SecureURL, nil
	}
	if uploaded.URL == "" {
		return "", errors.New("cloudinary response missing url")
	}
	return uploaded.URL, nil
}
