package api

import (
	"context"
	"sync"

	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// MockCollection is a mock listing collection for testing.
type MockCollection[T model.Listing, In any] struct {
	// Functions that can be set by tests to control behavior
	ListFn   func(ctx context.Context) ([]T, error)
	NearbyFn func(ctx context.Context, center model.Coordinate, radiusKm float64) ([]T, error)
	CreateFn func(ctx context.Context, in In) (*T, error)
	UpdateFn func(ctx context.Context, id int, in In) (*T, error)

	// Call tracking
	NearbyCalls []NearbyCall
	CreateCalls []In
	UpdateCalls []UpdateCall[In]
	ListCalls   int

	mu sync.Mutex
}

// NearbyCall records the parameters of a Nearby call.
type NearbyCall struct {
	Center   model.Coordinate
	RadiusKm float64
}

// UpdateCall records the parameters of an Update call.
type UpdateCall[In any] struct {
	Input In
	ID    int
}

// NewMockCollection creates a mock returning items from List and Nearby.
func NewMockCollection[T model.Listing, In any](items ...T) *MockCollection[T, In] {
	fetch := func(context.Context) ([]T, error) {
		out := make([]T, len(items))
		copy(out, items)
		return out, nil
	}
	return &MockCollection[T, In]{
		ListFn: fetch,
		NearbyFn: func(ctx context.Context, _ model.Coordinate, _ float64) ([]T, error) {
			return fetch(ctx)
		},
	}
}

// List implements service.ListingSource.
func (m *MockCollection[T, In]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []T{}, nil
}

// Nearby implements service.NearbySource.
func (m *MockCollection[T, In]) Nearby(ctx context.Context, center model.Coordinate, radiusKm float64) ([]T, error) {
	m.mu.Lock()
	m.NearbyCalls = append(m.NearbyCalls, NearbyCall{Center: center, RadiusKm: radiusKm})
	m.mu.Unlock()

	if m.NearbyFn != nil {
		return m.NearbyFn(ctx, center, radiusKm)
	}
	return []T{}, nil
}

// Create implements service.ListingWriter.
func (m *MockCollection[T, In]) Create(ctx context.Context, in In) (*T, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, in)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	var zero T
	return &zero, nil
}

// Update implements service.ListingWriter.
func (m *MockCollection[T, In]) Update(ctx context.Context, id int, in In) (*T, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall[In]{ID: id, Input: in})
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	var zero T
	return &zero, nil
}

// RecordedNearbyCalls returns a snapshot of the recorded Nearby calls.
func (m *MockCollection[T, In]) RecordedNearbyCalls() []NearbyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NearbyCall, len(m.NearbyCalls))
	copy(out, m.NearbyCalls)
	return out
}

// MockCategories is a mock category source for testing.
type MockCategories struct {
	ListFn    func(ctx context.Context) ([]model.Category, error)
	ListCalls int
	mu        sync.Mutex
}

// List implements service.CategorySource.
func (m *MockCategories) List(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []model.Category{}, nil
}

// MockAssistant is a mock AI assistant for testing.
type MockAssistant struct {
	EnhanceTextFn  func(ctx context.Context, text string) (string, error)
	GenerateTagsFn func(ctx context.Context, text string) ([]string, error)
	SuggestionsFn  func(ctx context.Context, text string) ([]string, error)

	// Call tracking
	EnhanceTextCalls  []string
	GenerateTagsCalls []string
	SuggestionsCalls  []string
}

// EnhanceText implements service.Assistant.
func (m *MockAssistant) EnhanceText(ctx context.Context, text string) (string, error) {
	m.EnhanceTextCalls = append(m.EnhanceTextCalls, text)
	if m.EnhanceTextFn != nil {
		return m.EnhanceTextFn(ctx, text)
	}
	return text, nil
}

// GenerateTags implements service.Assistant.
func (m *MockAssistant) GenerateTags(ctx context.Context, text string) ([]string, error) {
	m.GenerateTagsCalls = append(m.GenerateTagsCalls, text)
	if m.GenerateTagsFn != nil {
		return m.GenerateTagsFn(ctx, text)
	}
	return []string{}, nil
}

// Suggestions implements service.Assistant.
func (m *MockAssistant) Suggestions(ctx context.Context, text string) ([]string, error) {
	m.SuggestionsCalls = append(m.SuggestionsCalls, text)
	if m.SuggestionsFn != nil {
		return m.SuggestionsFn(ctx, text)
	}
	return []string{}, nil
}

// MockAuth is a mock auth API for testing.
type MockAuth struct {
	LoginFn    func(ctx context.Context, creds model.Credentials) (*model.Tokens, error)
	RegisterFn func(ctx context.Context, reg model.Registration) (*model.User, error)
	ProfileFn  func(ctx context.Context) (*model.User, error)

	// Call tracking
	LoginCalls    []model.Credentials
	RegisterCalls []model.Registration
	ProfileCalls  int
}

// Login implements service.AuthAPI.
func (m *MockAuth) Login(ctx context.Context, creds model.Credentials) (*model.Tokens, error) {
	m.LoginCalls = append(m.LoginCalls, creds)
	if m.LoginFn != nil {
		return m.LoginFn(ctx, creds)
	}
	return &model.Tokens{Access: "token"}, nil
}

// Register implements service.AuthAPI.
func (m *MockAuth) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	m.RegisterCalls = append(m.RegisterCalls, reg)
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, reg)
	}
	return &model.User{Username: reg.Username, Email: reg.Email, UserType: reg.UserType}, nil
}

// Profile implements service.AuthAPI.
func (m *MockAuth) Profile(ctx context.Context) (*model.User, error) {
	m.ProfileCalls++
	if m.ProfileFn != nil {
		return m.ProfileFn(ctx)
	}
	return &model.User{}, nil
}

// Ensure the mocks implement the service interfaces.
var (
	_ service.NearbySource[model.Service]                      = (*MockCollection[model.Service, model.ServiceInput])(nil)
	_ service.ListingWriter[model.Service, model.ServiceInput] = (*MockCollection[model.Service, model.ServiceInput])(nil)
	_ service.CategorySource                                   = (*MockCategories)(nil)
	_ service.Assistant                                        = (*MockAssistant)(nil)
	_ service.AuthAPI                                          = (*MockAuth)(nil)
)
