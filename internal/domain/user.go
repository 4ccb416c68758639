package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID             ID        `json:"id"     bson:"_id"`
	Name           string    `json:"name"   bson:"name"`
	Email          string    `json:"email"  bson:"email"`
	HashedPassword string    `json:"-"      bson:"password"` // Never expose password hash in JSON
	Avatar         string    `json:"avatar" bson:"avatar"`
	Date           time.Time `json:"date"   bson:"date"`
}

// NewUser builds a user with a fresh ID, the avatar derived from the email
// and the given password hash.
func NewUser(name, email, hashedPassword string) *User {
	return &User{
		ID:             NewID(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Avatar:         AvatarURL(email),
		Date:           time.Now().UTC(),
	}
}

// AvatarURL returns the Gravatar URL for email. The hash is computed over the
// trimmed, lower-cased address, so equal emails always map to equal avatars.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
