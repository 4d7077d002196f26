package user

import (
	"errors"
	"testing"

	"garagehub/models"
)

// fakeUserStore is an in-memory UserRepository.
type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) GetByID(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(u *models.User) error {
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Update(u *models.User) error {
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(id string) error {
	delete(s.users, id)
	return nil
}

func testUser() models.User {
	return models.User{Name: "Pat Doe", Email: "pat@example.com", Password: "s3cret-pass"}
}

func TestRegisterUser(t *testing.T) {
	store := newFakeUserStore()
	svc := &DefaultUserService{Repo: store}

	resp, err := svc.RegisterUser(testUser())
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if resp.ID == "" || resp.Token == "" {
		t.Fatalf("expected ID and token, got %+v", resp)
	}

	stored := store.users[resp.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret-pass" {
		t.Fatal("password must be stored hashed")
	}
	if stored.Password != "" {
		t.Fatal("plaintext password must not be persisted")
	}
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserStore()}

	if _, err := svc.RegisterUser(testUser()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.RegisterUser(testUser()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserStore()}

	if _, err := svc.RegisterUser(testUser()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	resp, err := svc.AuthenticateUser("pat@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("AuthenticateUser failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	if _, err := svc.AuthenticateUser("pat@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for a bad password, got %v", err)
	}
	if _, err := svc.AuthenticateUser("nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestUpdateUserIsPartial(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserStore()}

	resp, err := svc.RegisterUser(testUser())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	updated, err := svc.UpdateUser(models.User{
		ID:       resp.ID,
		Vehicles: []models.Vehicle{{ID: "v1", Make: "Toyota", Model: "Corolla", Year: 2019}},
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if len(updated.Vehicles) != 1 || updated.Vehicles[0].Make != "Toyota" {
		t.Fatalf("unexpected vehicles: %v", updated.Vehicles)
	}
	if updated.Name != "Pat Doe" || updated.Email != "pat@example.com" {
		t.Fatal("unset fields must keep prior values")
	}
}

func TestDeleteUser(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserStore()}

	resp, err := svc.RegisterUser(testUser())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := svc.DeleteUser(resp.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := svc.GetUserByID(resp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
