package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/devmatch/backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email     string
	name      string
	password  string
	techStack []string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		name:     fmt.Sprintf("testuser_%s", suffix),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithTechStack sets the tech stack tags
func (b *UserBuilder) WithTechStack(tags ...string) *UserBuilder {
	b.techStack = tags
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		TechStack:    b.techStack,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
		"name":     b.name,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: authResp.User.Email,
		Name:  authResp.User.Name,
	}

	if len(b.techStack) > 0 {
		if err := ts.DB.DB.Model(&domain.User{}).Where("id = ?", userID).
			Update("tech_stack", datatypes.NewJSONSlice(b.techStack)).Error; err != nil {
			t.Fatalf("failed to set tech stack: %v", err)
		}
		user.TechStack = b.techStack
	}

	return user, authResp.AccessToken
}

// CreateMatch creates a match between two users directly in the database
func CreateMatch(t *testing.T, db *gorm.DB, a, b *domain.User) *domain.Match {
	t.Helper()

	low, high := domain.CanonicalPair(a.ID, b.ID)
	match := &domain.Match{
		ID:         uuid.New(),
		UserLowID:  low,
		UserHighID: high,
		CreatedAt:  time.Now(),
	}

	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}

	return match
}

// MutualLike drives both likes through the swipe service and returns the
// resulting match
func MutualLike(t *testing.T, ts *TestServer, a, b *domain.User) *domain.Match {
	t.Helper()

	ctx := context.Background()
	if _, err := ts.Services.Swipe.RecordLike(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	result, err := ts.Services.Swipe.RecordLike(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("second like failed: %v", err)
	}
	if !result.IsMatch || result.Match == nil {
		t.Fatalf("expected mutual likes to produce a match")
	}
	return result.Match
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
