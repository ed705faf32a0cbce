package usecase

import (
	"context"
	"time"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Identity is the configured, non-derived part of the profile.
type Identity struct {
	DisplayName string
	Email       string
	JoinedAt    time.Time
}

// GetProfile assembles the profile from the identity and live counts.
type GetProfile struct {
	getNotes      *GetNotes
	getCategories *GetCategories
	identity      Identity
}

func NewGetProfile(getNotes *GetNotes, getCategories *GetCategories, identity Identity) *GetProfile {
	return &GetProfile{getNotes: getNotes, getCategories: getCategories, identity: identity}
}

func (uc *GetProfile) Execute(ctx context.Context) (core.UserProfile, error) {
	notes, err := uc.getNotes.Execute(ctx)
	if err != nil {
		return core.UserProfile{}, err
	}
	categories, err := uc.getCategories.Execute(ctx)
	if err != nil {
		return core.UserProfile{}, err
	}

	return core.UserProfile{
		DisplayName:     uc.identity.DisplayName,
		Email:           uc.identity.Email,
		JoinedAt:        uc.identity.JoinedAt,
		NotesCount:      len(notes),
		CategoriesCount: len(categories),
	}, nil
}
