package domain

import (
	"context"
	"time"
)

// User is a private chat participant and their stored preferences.
type User struct {
	ID           int64
	AnilistID    int
	AnilistToken string
	LanguageCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasToken reports whether the user linked an AniList account.
func (u *User) HasToken() bool {
	return u.AnilistToken != ""
}

// Group is a group chat and its language preference.
type Group struct {
	ID           int64
	LanguageCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ChatRepo interface {
	FindUser(ctx context.Context, id int64) (*User, error)
	StoreUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id int64) error

	FindGroup(ctx context.Context, id int64) (*Group, error)
	StoreGroup(ctx context.Context, group *Group) error
	UpdateGroup(ctx context.Context, group *Group) error
	DeleteGroup(ctx context.Context, id int64) error
}
