package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"kiosk-backend/internal/infrastructure/email"
	"kiosk-backend/internal/infrastructure/storage"
	"kiosk-backend/internal/shared"
)

// =====================================================
// OBJECT STORAGE
// =====================================================

// MockStorage keeps objects in memory. Keys in FailKeys fail to delete;
// keys in Unreported are silently left out of RemoveObjects results.
type MockStorage struct {
	mu         sync.Mutex
	BaseURL    string
	Objects    map[string][]byte
	FailKeys   map[string]error
	Unreported map[string]bool
	UploadErr  error
	BatchErr   error

	DeleteCalls []string
	BatchCalls  [][]string
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		BaseURL:    "https://cdn.test/kiosk",
		Objects:    make(map[string][]byte),
		FailKeys:   make(map[string]error),
		Unreported: make(map[string]bool),
	}
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	m.Objects[key] = data
	return m.BaseURL + "/" + key, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if err := m.FailKeys[key]; err != nil {
		return err
	}
	delete(m.Objects, key)
	return nil
}

func (m *MockStorage) RemoveObjects(ctx context.Context, keys []string) (map[string]error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchCalls = append(m.BatchCalls, append([]string(nil), keys...))
	if m.BatchErr != nil {
		return nil, m.BatchErr
	}
	results := make(map[string]error, len(keys))
	for _, key := range keys {
		if m.Unreported[key] {
			continue
		}
		if err := m.FailKeys[key]; err != nil {
			results[key] = err
			continue
		}
		delete(m.Objects, key)
		results[key] = nil
	}
	return results, nil
}

// =====================================================
// IMAGE PROCESSOR
// =====================================================

type MockImageProcessor struct {
	Err error
}

func (p *MockImageProcessor) Process(data []byte) (*storage.ProcessedImage, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return &storage.ProcessedImage{
		Data:        data,
		ContentType: "image/png",
		Extension:   "png",
		Width:       1,
		Height:      1,
	}, nil
}

// =====================================================
// CACHE
// =====================================================

type MockCache struct {
	mu     sync.Mutex
	Items  map[string][]byte
	GetErr error
	SetErr error
	Gets   int
	Sets   int
}

func NewMockCache() *MockCache {
	return &MockCache{Items: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	if c.GetErr != nil {
		return false, c.GetErr
	}
	data, ok := c.Items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	if c.SetErr != nil {
		return c.SetErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Items[key] = data
	return nil
}

func (c *MockCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.Items, k)
	}
	return nil
}

func (c *MockCache) Ping(ctx context.Context) error {
	return nil
}

// =====================================================
// NOTIFICATIONS
// =====================================================

type MockNotifier struct {
	mu          sync.Mutex
	Err         error
	MemberAdded []shared.MemberAddedPayload
}

func (n *MockNotifier) EnqueueMemberAdded(ctx context.Context, payload shared.MemberAddedPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.MemberAdded = append(n.MemberAdded, payload)
	return nil
}

type MockEmailService struct {
	mu   sync.Mutex
	Err  error
	Sent []email.EmailRequest
}

func (m *MockEmailService) SendEmail(ctx context.Context, req email.EmailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, req)
	return nil
}

func (m *MockEmailService) SendMemberAddedEmail(ctx context.Context, data email.MemberAddedData) error {
	return m.SendEmail(ctx, email.EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("You joined %s on Kiosk", data.JournalName),
		Body:    data.JournalURL,
	})
}
