package users

import (
	"time"

	"github.com/2beens/gymrats/internal/achievements"
	"github.com/2beens/gymrats/internal/levels"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	XP             int       `json:"xp"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"isActive"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Profile struct {
	ID             int64             `json:"id"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	XP             int               `json:"xp"`
	ProfilePicture string            `json:"profilePicture"`
	LevelInfo      levels.Resolution `json:"levelInfo"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type PublicProfile struct {
	ID             int64                      `json:"id"`
	Username       string                     `json:"username"`
	ProfilePicture string                     `json:"profilePicture"`
	XP             int                        `json:"xp"`
	LevelInfo      levels.Resolution          `json:"levelInfo"`
	Followers      int                        `json:"followers"`
	Following      int                        `json:"following"`
	Achievements   []achievements.Achievement `json:"achievements"`
	IsFollowing    bool                       `json:"isFollowing"`
	CreatedAt      time.Time                  `json:"createdAt"`
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user,omitempty"`
}

func defaultProfilePicture(username string) string {
	initial := "A"
	if username != "" {
		initial = string([]rune(username)[0:1])
	}
	return "https://placehold.co/100x100/1E1E1E/ffd75d?text=" + initial
}
