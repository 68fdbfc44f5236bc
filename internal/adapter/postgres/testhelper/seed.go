package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a regular user and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "operator-" + suffix + "@example.com",
		Name:         "Operator " + suffix,
		Role:         domain.UserRoleUser,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, string(user.Role), user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return user
}

// SeedDonor inserts a donor with an age and returns it.
func SeedDonor(t *testing.T, pool *pgxpool.Pool) domain.Donor {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	age := 34
	donor := domain.Donor{
		ID:            uuid.New(),
		UniqueDonorID: "DN-" + suffix,
		Name:          "Donor " + suffix,
		Gender:        domain.GenderFemale,
		Age:           &age,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO donors (id, unique_donor_id, name, gender, age, is_priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		donor.ID, donor.UniqueDonorID, donor.Name, string(donor.Gender), age, donor.IsPriority, donor.CreatedAt, donor.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed donor: %v", err)
	}

	return donor
}
