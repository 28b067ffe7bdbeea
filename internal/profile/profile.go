// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile manages the single user identity of the application.

There is exactly one profile per installation — no accounts, no sessions,
no credentials. It is created with friendly defaults on first run, edited
wholesale, and persisted as its own snapshot document.
*/
package profile

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"time"
)

// # Domain Entity

// Profile is the reader's public identity: shown in the header and
// snapshotted onto every comment they post.
type Profile struct {
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Bio      string    `json:"bio"`
	JoinedAt time.Time `json:"joined_at"`
}

// AvatarOrPlaceholder returns the configured avatar URL, falling back to a
// generated placeholder keyed by the profile name.
func (p Profile) AvatarOrPlaceholder() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	return PlaceholderAvatar(p.Name)
}

// # Defaults

// Default builds the first-run profile: a guest identity with a randomly
// seeded placeholder avatar.
func Default(now time.Time) Profile {
	seed := "Reader-" + strconv.Itoa(rand.IntN(1000))
	return Profile{
		Name:     "Bibliophile Guest",
		Avatar:   PlaceholderAvatar(seed),
		Bio:      "Lover of stories, chaser of endings.",
		JoinedAt: now,
	}
}

// PlaceholderAvatar returns a deterministic generated avatar URL for seed.
func PlaceholderAvatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(seed)
}

// # Inputs

// UpdateInput carries the full editable field set. Profile edits are
// wholesale: every field is overwritten, only JoinedAt survives.
type UpdateInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}
