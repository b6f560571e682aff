package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Cookie names mirrored by the session store.
const (
	CookieUser  = "auth_user"
	CookieToken = "auth_token"
)

// Cookie lifetimes: 7 days with "remember me", 1 day without.
const (
	rememberMeExpiry = 7 * 24 * time.Hour
	sessionExpiry    = 24 * time.Hour
)

// Jar is the cookie storage collaborator. Get hides expired entries.
type Jar interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration) error
	Remove(name string) error
}

type cookieRecord struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires"`
}

// MemoryJar is an in-process Jar for tests and throwaway sessions.
type MemoryJar struct {
	mu      sync.Mutex
	cookies map[string]cookieRecord

	// now is a test seam for expiry checks.
	now func() time.Time
}

func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string]cookieRecord), now: time.Now}
}

func (j *MemoryJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, ok := j.cookies[name]
	if !ok || j.now().After(rec.Expires) {
		return "", false
	}
	return rec.Value, true
}

func (j *MemoryJar) Set(name, value string, ttl time.Duration) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies[name] = cookieRecord{Value: value, Expires: j.now().Add(ttl)}
	return nil
}

func (j *MemoryJar) Remove(name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.cookies, name)
	return nil
}

// FileJar persists cookies to a JSON file so a session survives process
// restarts, the way browser cookies survive reloads.
type FileJar struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileJar(path string) *FileJar {
	return &FileJar{path: path, now: time.Now}
}

func (j *FileJar) load() (map[string]cookieRecord, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]cookieRecord{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", j.path, err)
	}
	m := map[string]cookieRecord{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", j.path, err)
	}
	return m, nil
}

func (j *FileJar) save(m map[string]cookieRecord) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0o600)
}

func (j *FileJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return "", false
	}
	rec, ok := m[name]
	if !ok || j.now().After(rec.Expires) {
		return "", false
	}
	return rec.Value, true
}

func (j *FileJar) Set(name, value string, ttl time.Duration) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	m[name] = cookieRecord{Value: value, Expires: j.now().Add(ttl)}
	return j.save(m)
}

func (j *FileJar) Remove(name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	if _, ok := m[name]; !ok {
		return nil
	}
	delete(m, name)
	return j.save(m)
}
