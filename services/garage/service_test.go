package garage

import (
	"errors"
	"testing"

	"garagehub/models"
)

// fakeGarageStore is an in-memory GarageRepository.
type fakeGarageStore struct {
	garages map[string]models.Garage
}

func newFakeGarageStore() *fakeGarageStore {
	return &fakeGarageStore{garages: make(map[string]models.Garage)}
}

func (s *fakeGarageStore) GetByID(id string) (*models.Garage, error) {
	g, ok := s.garages[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *fakeGarageStore) GetAll() ([]models.Garage, error) {
	var out []models.Garage
	for _, g := range s.garages {
		out = append(out, g)
	}
	return out, nil
}

func (s *fakeGarageStore) Create(g *models.Garage) error {
	s.garages[g.ID] = *g
	return nil
}

func (s *fakeGarageStore) Update(g *models.Garage) error {
	s.garages[g.ID] = *g
	return nil
}

func (s *fakeGarageStore) Delete(id string) error {
	delete(s.garages, id)
	return nil
}

func TestCreateAndFetchGarage(t *testing.T) {
	svc := &DefaultGarageService{Repo: newFakeGarageStore()}

	created, err := svc.Create(models.Garage{Name: "Quick Fit Tyres", OwnerID: "owner-1", Location: "Springfield"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated ID")
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Quick Fit Tyres" {
		t.Fatalf("name = %q, want %q", got.Name, "Quick Fit Tyres")
	}

	if _, err := svc.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateGarageRequiresNameAndOwner(t *testing.T) {
	svc := &DefaultGarageService{Repo: newFakeGarageStore()}

	if _, err := svc.Create(models.Garage{OwnerID: "owner-1"}); err == nil {
		t.Fatal("expected missing name to be rejected")
	}
	if _, err := svc.Create(models.Garage{Name: "No Owner Motors"}); err == nil {
		t.Fatal("expected missing owner to be rejected")
	}
}

func TestUpdateGarageIsPartial(t *testing.T) {
	svc := &DefaultGarageService{Repo: newFakeGarageStore()}

	created, err := svc.Create(models.Garage{Name: "Quick Fit Tyres", OwnerID: "owner-1", Location: "Springfield"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(models.Garage{ID: created.ID, PhoneNumber: "555-0101"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.PhoneNumber != "555-0101" {
		t.Fatalf("phone = %q, want %q", updated.PhoneNumber, "555-0101")
	}
	if updated.Name != "Quick Fit Tyres" || updated.Location != "Springfield" {
		t.Fatal("unset fields must keep prior values")
	}
}

func TestRequireOwner(t *testing.T) {
	svc := &DefaultGarageService{Repo: newFakeGarageStore()}

	created, err := svc.Create(models.Garage{Name: "Quick Fit Tyres", OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.RequireOwner(created.ID, "owner-1"); err != nil {
		t.Fatalf("owner check failed for the owner: %v", err)
	}
	if err := svc.RequireOwner(created.ID, "intruder"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.RequireOwner("missing", "owner-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGarage(t *testing.T) {
	svc := &DefaultGarageService{Repo: newFakeGarageStore()}

	created, err := svc.Create(models.Garage{Name: "Quick Fit Tyres", OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
