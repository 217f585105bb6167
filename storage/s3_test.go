package storage

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestValidateBase64Image(t *testing.T) {
	small := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))

	mime, payload, err := ValidateBase64Image("data:image/png;base64," + small)
	if err != nil {
		t.Fatalf("valid png rejected: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if payload != small {
		t.Error("payload should be the raw base64 body")
	}

	if _, _, err := ValidateBase64Image("data:image/gif;base64," + small); err != ErrUnsupportedMIME {
		t.Errorf("gif should be rejected with ErrUnsupportedMIME, got %v", err)
	}

	if _, _, err := ValidateBase64Image(""); err == nil {
		t.Error("empty payload should be rejected")
	}

	if _, _, err := ValidateBase64Image("data:image/png;base64,%%%not-base64%%%"); err == nil {
		t.Error("invalid base64 should be rejected")
	}

	big := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", MaxImageBytes+1)))
	if _, _, err := ValidateBase64Image("data:image/jpeg;base64," + big); err != ErrImageTooLarge {
		t.Errorf("oversized image should be rejected with ErrImageTooLarge, got %v", err)
	}
}
