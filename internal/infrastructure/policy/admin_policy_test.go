package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writePolicyFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "admin_policy.conf")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAdminPolicyMatchesCaseInsensitive(t *testing.T) {
	path := writePolicyFile(t, t.TempDir(), "# campus moderators\nMods@Student.EDU\n\nhelpdesk@student.edu\n")

	p := NewAdminPolicy(path)
	assert.NoError(t, p.Reload())

	assert.True(t, p.IsAdmin("mods@student.edu"))
	assert.True(t, p.IsAdmin("HELPDESK@STUDENT.EDU"))
	assert.False(t, p.IsAdmin("someone@student.edu"))
	assert.False(t, p.IsAdmin(""))

	assert.Len(t, p.Emails(), 2, "comments and blank lines are skipped")
}

func TestAdminPolicyReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := writePolicyFile(t, dir, "first@student.edu\n")

	p := NewAdminPolicy(path)
	assert.NoError(t, p.Reload())
	assert.True(t, p.IsAdmin("first@student.edu"))
	assert.False(t, p.IsAdmin("second@student.edu"))

	assert.NoError(t, os.WriteFile(path, []byte("second@student.edu\n"), 0o644))
	// Push the mtime forward so the change is visible regardless of
	// filesystem timestamp granularity.
	future := time.Now().Add(2 * time.Second)
	assert.NoError(t, os.Chtimes(path, future, future))

	assert.True(t, p.IsAdmin("second@student.edu"))
	assert.False(t, p.IsAdmin("first@student.edu"))
}

func TestAdminPolicyMissingFileDeniesAll(t *testing.T) {
	p := NewAdminPolicy(filepath.Join(t.TempDir(), "nope.conf"))

	assert.Error(t, p.Reload())
	assert.False(t, p.IsAdmin("anyone@student.edu"))
}
