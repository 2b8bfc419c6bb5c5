package util

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/mkravets/link-shortener/internal/models"
)

const Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomString(n int) string {
	sb := strings.Builder{}
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(Charset[rand.Intn(len(Charset))])
	}
	return sb.String()
}

// IsShortURL reports whether s could have been produced by the generator:
// non-empty and alphanumeric only.
func IsShortURL(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Charset, rune(s[i])) {
			return false
		}
	}
	return true
}

func JSONResponse(w http.ResponseWriter, response interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ParseURL validates that rawURL is an absolute http(s) URL and returns it
// in normalized form.
func ParseURL(rawURL string) (string, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", models.ErrInvalidURL
	}
	if (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return "", models.ErrInvalidURL
	}
	return parsedURL.String(), nil
}
