package postgres

import (
	"context"
	"testing"

	"github.com/vasool/vasool/internal/domain/user"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)

	tests := []struct {
		name    string
		user    *user.User
		wantErr bool
	}{
		{
			name: "create user successfully",
			user: &user.User{
				Email:        "test@example.com",
				Name:         "Test User",
				PasswordHash: "hash",
				Role:         user.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "create another user",
			user: &user.User{
				Email:        "another@example.com",
				Name:         "Another User",
				PasswordHash: "hash",
				Role:         user.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "duplicate email fails",
			user: &user.User{
				Email:        "test@example.com",
				Name:         "Duplicate",
				PasswordHash: "hash",
				Role:         user.RoleUser,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			err := repo.Create(ctx, tt.user)

			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if tt.user.ID == 0 {
					t.Error("Create() did not set user ID")
				}
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("GetByID() Email = %v, want %v", got.Email, u.Email)
	}
	if got.Name != u.Name {
		t.Errorf("GetByID() Name = %v, want %v", got.Name, u.Name)
	}

	_, err = repo.GetByID(ctx, 999)
	if !errors.IsNotFound(err) {
		t.Errorf("GetByID(999) error = %v, want not found", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "test@example.com"
	u := &user.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetByEmail() ID = %v, want %v", got.ID, u.ID)
	}

	_, err = repo.GetByEmail(ctx, "nonexistent@example.com")
	if !errors.IsNotFound(err) {
		t.Errorf("GetByEmail(nonexistent) error = %v, want not found", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u.Name = "Renamed User"
	u.Role = user.RoleAdmin
	if err := repo.Update(ctx, u); err != nil {
		t.Errorf("Update() error = %v", err)
	}

	updated, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if updated.Name != "Renamed User" {
		t.Errorf("Update() Name = %v, want Renamed User", updated.Name)
	}
	if updated.Role != user.RoleAdmin {
		t.Errorf("Update() Role = %v, want %v", updated.Role, user.RoleAdmin)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, u.ID); err == nil {
		t.Error("Delete() user still exists after deletion")
	}
}
