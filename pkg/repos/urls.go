package repos

import (
	"regexp"
	"strings"

	"github.com/agentstation/docsync/pkg/errors"
)

var (
	httpURLPattern = regexp.MustCompile(`^https?://.+`)
	sshURLPattern  = regexp.MustCompile(`^(ssh://)?git@[\w.-]+[:/].+`)
)

// IsSSHURL reports whether url is an SSH git URL
// (git@host:path or ssh://git@host/path).
func IsSSHURL(url string) bool {
	return sshURLPattern.MatchString(url)
}

// ValidateURL checks that url is a plausible git repository URL in either
// HTTP(S) or SSH form. It validates shape only; reachability is the
// backend's concern.
func ValidateURL(url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return &errors.ValidationError{
			Field:   "repo_url",
			Message: "repository URL cannot be empty",
		}
	}
	if httpURLPattern.MatchString(trimmed) || sshURLPattern.MatchString(trimmed) {
		return nil
	}
	return &errors.ValidationError{
		Field:   "repo_url",
		Value:   url,
		Message: "must be an HTTP(S) URL (https://host/user/repo.git) or SSH URL (git@host:user/repo.git)",
	}
}

// sshToHTTPS converts an SSH git URL to its HTTPS form, returning an
// empty string when the URL is not convertible.
func sshToHTTPS(url string) string {
	if strings.HasPrefix(url, "ssh://git@") {
		return "https://" + strings.TrimPrefix(url, "ssh://git@")
	}
	if strings.HasPrefix(url, "git@") {
		return "https://" + strings.Replace(strings.TrimPrefix(url, "git@"), ":", "/", 1)
	}
	return ""
}

// NormalizeURL canonicalizes a repository URL for duplicate detection.
// SSH URLs convert to HTTPS, http becomes https, a .git suffix is
// ensured, and the result is lowercased so the same repository compares
// equal regardless of the URL form it was submitted with.
func NormalizeURL(url string) string {
	normalized := strings.TrimSpace(url)

	if IsSSHURL(normalized) {
		if https := sshToHTTPS(normalized); https != "" {
			normalized = https
		}
	}

	if strings.HasPrefix(normalized, "http://") {
		normalized = "https://" + strings.TrimPrefix(normalized, "http://")
	}

	if !strings.HasSuffix(normalized, ".git") {
		normalized += ".git"
	}

	// Collapse a trailing slash left before the appended suffix.
	normalized = strings.Replace(normalized, "/.git", ".git", 1)

	return strings.ToLower(normalized)
}

// NameFromURL derives a display name from a repository URL: the last path
// segment with any .git suffix removed.
func NameFromURL(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(url), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	// SSH short form uses ':' as the path separator.
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
