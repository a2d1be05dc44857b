package repos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/docsync/pkg/repos"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://github.com/user/repo.git",
		"http://github.com/user/repo",
		"git@github.com:user/repo.git",
		"ssh://git@github.com/user/repo.git",
		"git@gitlab.example.com:group/project.git",
	}
	for _, url := range valid {
		assert.NoError(t, repos.ValidateURL(url), url)
	}

	invalid := []string{
		"",
		"   ",
		"ftp://github.com/user/repo",
		"github.com/user/repo",
		"not a url",
	}
	for _, url := range invalid {
		assert.Error(t, repos.ValidateURL(url), url)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"git@github.com:user/repo.git", "https://github.com/user/repo.git"},
		{"ssh://git@github.com/user/repo.git", "https://github.com/user/repo.git"},
		{"https://github.com/user/repo.git", "https://github.com/user/repo.git"},
		{"https://github.com/user/repo", "https://github.com/user/repo.git"},
		{"http://github.com/user/repo.git", "https://github.com/user/repo.git"},
		{"https://github.com/user/repo/", "https://github.com/user/repo.git"},
		{"https://GitHub.com/User/Repo.git", "https://github.com/user/repo.git"},
		{"  https://github.com/user/repo.git  ", "https://github.com/user/repo.git"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repos.NormalizeURL(tt.in), tt.in)
	}
}

func TestNormalizeURLDetectsDuplicates(t *testing.T) {
	// The same repository in SSH and HTTPS form must normalize identically.
	ssh := repos.NormalizeURL("git@github.com:agentstation/docsync.git")
	https := repos.NormalizeURL("https://github.com/agentstation/docsync")
	assert.Equal(t, ssh, https)
}

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/user/repo.git", "repo"},
		{"https://github.com/user/repo", "repo"},
		{"https://github.com/user/repo/", "repo"},
		{"git@github.com:user/repo.git", "repo"},
		{"git@github.com:repo.git", "repo"},
		{"repo", "repo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repos.NameFromURL(tt.in), tt.in)
	}
}

func TestIsSSHURL(t *testing.T) {
	assert.True(t, repos.IsSSHURL("git@github.com:user/repo.git"))
	assert.True(t, repos.IsSSHURL("ssh://git@github.com/user/repo.git"))
	assert.False(t, repos.IsSSHURL("https://github.com/user/repo.git"))
}
