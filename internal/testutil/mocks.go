package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/vasool/vasool/internal/domain/chat"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/domain/lead"
	"github.com/vasool/vasool/internal/domain/user"
	"github.com/vasool/vasool/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.Conflict("Email already registered")
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
	}
	return nil
}

// MockIntegrationRepository is a mock implementation of integration.Repository
type MockIntegrationRepository struct {
	Records     map[string]*integration.Integration
	Handshakes  map[string]*integration.Handshake
	NextID      int64
	UpsertError error
	GetError    error
	TokenError  error

	UpsertCalls  int
	ConsumeCalls int
}

func NewMockIntegrationRepository() *MockIntegrationRepository {
	return &MockIntegrationRepository{
		Records:    make(map[string]*integration.Integration),
		Handshakes: make(map[string]*integration.Handshake),
		NextID:     1,
	}
}

func recKey(userID int64, provider string) string {
	return fmt.Sprintf("%d/%s", userID, provider)
}

func (m *MockIntegrationRepository) Upsert(ctx context.Context, rec *integration.Integration) error {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}
	key := recKey(rec.UserID, rec.Provider)
	if existing, ok := m.Records[key]; ok {
		rec.ID = existing.ID
	} else {
		rec.ID = m.NextID
		m.NextID++
	}
	cp := *rec
	m.Records[key] = &cp
	return nil
}

func (m *MockIntegrationRepository) Get(ctx context.Context, userID int64, provider string) (*integration.Integration, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	rec, ok := m.Records[recKey(userID, provider)]
	if !ok {
		return nil, errors.NotFound("Integration")
	}
	cp := *rec
	return &cp, nil
}

func (m *MockIntegrationRepository) UpdateTokens(ctx context.Context, userID int64, provider, accessToken string) error {
	if m.TokenError != nil {
		return m.TokenError
	}
	rec, ok := m.Records[recKey(userID, provider)]
	if !ok {
		return errors.NotFound("Integration")
	}
	rec.AccessToken = accessToken
	return nil
}

func (m *MockIntegrationRepository) UpdateLastSync(ctx context.Context, userID int64, provider string, at time.Time) error {
	rec, ok := m.Records[recKey(userID, provider)]
	if !ok {
		return errors.NotFound("Integration")
	}
	rec.LastSync = &at
	return nil
}

func (m *MockIntegrationRepository) Disconnect(ctx context.Context, userID int64, provider string, at time.Time) error {
	rec, ok := m.Records[recKey(userID, provider)]
	if !ok {
		return errors.NotFound("Integration")
	}
	rec.Status = integration.StatusInactive
	rec.DisconnectedAt = &at
	rec.AccessToken = ""
	return nil
}

func (m *MockIntegrationRepository) CreateHandshake(ctx context.Context, h *integration.Handshake) error {
	h.ID = m.NextID
	m.NextID++
	m.Handshakes[h.State] = h
	return nil
}

func (m *MockIntegrationRepository) ConsumeHandshake(ctx context.Context, state string) (*integration.Handshake, error) {
	m.ConsumeCalls++
	h, ok := m.Handshakes[state]
	if !ok {
		return nil, errors.InvalidHandshake()
	}
	delete(m.Handshakes, state)
	return h, nil
}

// MockChatRepository is a mock implementation of chat.Repository
type MockChatRepository struct {
	Messages    []*chat.Message
	NextID      int64
	AppendError error
}

func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{NextID: 1}
}

func (m *MockChatRepository) Append(ctx context.Context, msg *chat.Message) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	msg.ID = m.NextID
	m.NextID++
	m.Messages = append(m.Messages, msg)
	return nil
}

func (m *MockChatRepository) History(ctx context.Context, userID int64, sessionID string) ([]*chat.Message, error) {
	result := []*chat.Message{}
	for _, msg := range m.Messages {
		if msg.UserID == userID && msg.SessionID == sessionID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (m *MockChatRepository) Sessions(ctx context.Context, userID int64) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for i := len(m.Messages) - 1; i >= 0; i-- {
		msg := m.Messages[i]
		if msg.UserID == userID && !seen[msg.SessionID] {
			seen[msg.SessionID] = true
			result = append(result, msg.SessionID)
		}
	}
	return result, nil
}

// MockLeadRepository is a mock implementation of lead.Repository
type MockLeadRepository struct {
	Leads       []*lead.Lead
	NextID      int64
	CreateError error
}

func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{NextID: 1}
}

func (m *MockLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	l.ID = m.NextID
	m.NextID++
	m.Leads = append(m.Leads, l)
	return nil
}

func (m *MockLeadRepository) List(ctx context.Context, kind string, limit, offset int) ([]*lead.Lead, error) {
	result := []*lead.Lead{}
	for i := len(m.Leads) - 1; i >= 0; i-- {
		if m.Leads[i].Kind == kind {
			result = append(result, m.Leads[i])
		}
	}
	return result, nil
}
