package view

import (
	"fmt"

	"fe-v2/internal/avatar"
	"fe-v2/internal/domain"
)

// UserCard is the stateless user row: avatar plus username. Clicking it is
// modeled by the owner passing the card's user id to SelectUser.
type UserCard struct {
	User     domain.SimpleUserInfo
	resolver *avatar.Resolver
}

// NewUserCard creates a user card for the given user
func NewUserCard(user domain.SimpleUserInfo, resolver *avatar.Resolver) UserCard {
	return UserCard{User: user, resolver: resolver}
}

// Render returns the card's single display line
func (c UserCard) Render() string {
	return fmt.Sprintf("[头像 %s] %s", c.resolver.Resolve(c.User.AvatarURL), c.User.Username)
}
