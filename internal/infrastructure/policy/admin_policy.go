package policy

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/logger"
)

// AdminPolicy holds the allow-list of privileged account emails. The list
// lives in an external file (one email per line, '#' starts a comment) and
// reloads when the file changes, so granting or revoking admin access never
// needs a deploy.
type AdminPolicy struct {
	path string

	mutex   sync.RWMutex
	emails  map[string]struct{}
	modTime time.Time
}

func NewAdminPolicy(path string) *AdminPolicy {
	p := &AdminPolicy{
		path:   path,
		emails: make(map[string]struct{}),
	}
	if err := p.Reload(); err != nil {
		logger.Warn("Admin policy file %s not loaded: %v", path, err)
	}
	return p
}

// IsAdmin reports whether email is on the allow-list, reloading the file
// first if it changed on disk. Comparison is case-insensitive.
func (p *AdminPolicy) IsAdmin(email string) bool {
	if email == "" {
		return false
	}

	p.maybeReload()

	p.mutex.RLock()
	defer p.mutex.RUnlock()
	_, ok := p.emails[strings.ToLower(email)]
	return ok
}

// Emails returns a copy of the current allow-list.
func (p *AdminPolicy) Emails() []string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	out := make([]string, 0, len(p.emails))
	for email := range p.emails {
		out = append(out, email)
	}
	return out
}

// Reload re-reads the policy file unconditionally.
func (p *AdminPolicy) Reload() error {
	file, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	emails := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		emails[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	p.mutex.Lock()
	p.emails = emails
	p.modTime = info.ModTime()
	p.mutex.Unlock()

	logger.Info("Admin policy loaded: %d entries from %s", len(emails), p.path)
	return nil
}

func (p *AdminPolicy) maybeReload() {
	info, err := os.Stat(p.path)
	if err != nil {
		return
	}

	p.mutex.RLock()
	stale := info.ModTime().After(p.modTime)
	p.mutex.RUnlock()

	if stale {
		if err := p.Reload(); err != nil {
			logger.Warn("Admin policy reload failed: %v", err)
		}
	}
}
