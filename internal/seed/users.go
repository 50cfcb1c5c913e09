package seed

import (
	"context"
	"fmt"

	"billed/internal/store"
	"billed/pkg/types"
)

type seedUser struct {
	ID       string
	Email    string
	UserType types.UserType
}

// The two demo accounts every environment gets. Passwords live in Cognito,
// not here; these rows only carry the profile and role.
var seedUsers = []seedUser{
	{ID: "pUJ2fb9ZbKOFmlpvLKEbR", Email: "employee@test.tld", UserType: types.UserTypeEmployee},
	{ID: "Yx3qWn0dVtIbCZSzAnohe", Email: "admin@test.tld", UserType: types.UserTypeAdmin},
}

func SeedUsers(ctx context.Context, repo *store.UserRepository) error {
	seeded := 0
	for _, u := range seedUsers {
		err := repo.UpsertUser(ctx, &types.User{
			ID:       u.ID,
			Email:    u.Email,
			UserType: u.UserType,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		seeded++
	}

	fmt.Printf("Users seeded: %d upserted\n", seeded)
	return nil
}
