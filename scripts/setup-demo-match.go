package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
}

type RegisterResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

type LikeResponse struct {
	IsMatch bool `json:"isMatch"`
	Match   *struct {
		ID string `json:"id"`
	} `json:"match"`
}

func registerUser(email, name, password string) (*User, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &User{
		Email:    result.User.Email,
		Name:     result.User.Name,
		Password: password,
		Token:    result.AccessToken,
		UserID:   result.User.ID,
	}, nil
}

func addTech(token, name string) error {
	body, _ := json.Marshal(map[string]string{"name": name})

	req, _ := http.NewRequest("POST", apiBase+"/profile/tech", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 200 OK or 409 Conflict (already on stack) are both fine
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("add tech failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func like(token, likedUserID string) (*LikeResponse, error) {
	body, _ := json.Marshal(map[string]string{"likedUserId": likedUserID})

	req, _ := http.NewRequest("POST", apiBase+"/swipes/like", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("like failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result LikeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

func generateName(index int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("demo_%d_%d_%s", index, time.Now().Unix(), string(random))
}

func main() {
	fmt.Println("Setting up demo match...")

	password := "demopassword123"
	stacks := [][]string{
		{"go", "postgres", "redis"},
		{"go", "typescript", "react"},
	}

	var users []*User
	fmt.Println("Registering 2 users...")
	for i := 0; i < 2; i++ {
		name := generateName(i + 1)
		user, err := registerUser(name+"@example.com", name, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register user %d: %v\n", i+1, err)
			os.Exit(1)
		}
		users = append(users, user)
		fmt.Printf("  ✓ User %d: %s\n", i+1, user.Name)

		for _, tech := range stacks[i] {
			if err := addTech(user.Token, tech); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to add tech for user %d: %v\n", i+1, err)
				os.Exit(1)
			}
		}
	}

	fmt.Println("\nCreating mutual likes...")
	if _, err := like(users[0].Token, users[1].UserID); err != nil {
		fmt.Fprintf(os.Stderr, "First like failed: %v\n", err)
		os.Exit(1)
	}
	result, err := like(users[1].Token, users[0].UserID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Second like failed: %v\n", err)
		os.Exit(1)
	}
	if !result.IsMatch || result.Match == nil {
		fmt.Fprintln(os.Stderr, "Mutual likes did not produce a match")
		os.Exit(1)
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("DEMO MATCH SETUP COMPLETE")
	fmt.Println("============================================================")

	fmt.Println("\nMatch Info:")
	fmt.Printf("  ID: %s\n", result.Match.ID)

	fmt.Println("\nUsers:")
	for i, user := range users {
		fmt.Printf("  User %d: %s / %s\n", i+1, user.Email, user.Password)
		fmt.Printf("    Token: %s\n", user.Token)
		fmt.Printf("    WS:    ws://localhost:8080/api/v1/ws?token=%s\n", user.Token)
	}
}
