package testhelpers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	"github.com/pageza/healthtracker/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every user made by CreateTestUser.
const TestPassword = "password123"

// CreateTestUser inserts a user with TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// A 1x1 PNG.
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// PNGImage returns a small valid PNG. Different seeds give different bytes
// so images do not share an analysis cache key.
func PNGImage(seed int) []byte {
	img := bytes.Clone(pngPixel)
	return append(img, []byte(fmt.Sprintf("seed-%d", seed))...)
}

// StubRecognizer returns fixed foods and counts calls.
type StubRecognizer struct {
	mu    sync.Mutex
	Foods []string
	Err   error
	calls int
}

func (s *StubRecognizer) RecognizeFoods(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]string(nil), s.Foods...), nil
}

func (s *StubRecognizer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MemoryPhotoStore keeps photos in a map.
type MemoryPhotoStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
}

func NewMemoryPhotoStore() *MemoryPhotoStore {
	return &MemoryPhotoStore{Objects: map[string][]byte{}}
}

func (m *MemoryPhotoStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Objects[key] = bytes.Clone(data)
	return nil
}

func (m *MemoryPhotoStore) URL(ctx context.Context, key string) (string, error) {
	return "https://photos.test/" + key, nil
}
