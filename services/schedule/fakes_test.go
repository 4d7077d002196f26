package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	scheduleRepo "garagehub/database/repository/schedule"
	"garagehub/models"
)

// fakeGarageStore is an in-memory GarageRepository.
type fakeGarageStore struct {
	garages map[string]models.Garage
}

func newFakeGarageStore(ids ...string) *fakeGarageStore {
	s := &fakeGarageStore{garages: make(map[string]models.Garage)}
	for _, id := range ids {
		s.garages[id] = models.Garage{ID: id, Name: "Garage " + id, OwnerID: "owner-" + id}
	}
	return s
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

// fakeSlotStore is an in-memory ScheduleRepository mirroring the overlap and
// replace-day semantics of the real store. Mutations for a garage+day are
// serialized (the store conflicts writers on a shared day document, the fake
// uses a mutex) so concurrent overlap checks see each other's writes.
type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[string]models.GarageScheduleSlot
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[string]models.GarageScheduleSlot)}
}

func (s *fakeSlotStore) GetByID(id string) (*models.GarageScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (s *fakeSlotStore) GetActiveByGarageAndDay(garageID, day string) ([]models.GarageScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GarageScheduleSlot
	for _, slot := range s.slots {
		if slot.GarageID == garageID && slot.DayOfWeek == day && slot.IsActive {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *fakeSlotStore) GetActiveByGarage(garageID string) ([]models.GarageScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GarageScheduleSlot
	for _, slot := range s.slots {
		if slot.GarageID == garageID && slot.IsActive {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *fakeSlotStore) CreateIfNoOverlap(_ context.Context, slot *models.GarageScheduleSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.slots {
		if existing.GarageID == slot.GarageID && existing.DayOfWeek == slot.DayOfWeek && existing.IsActive &&
			existing.Overlaps(slot.StartTime, slot.EndTime) {
			return scheduleRepo.ErrSlotOverlap
		}
	}
	s.slots[slot.ID] = *slot
	return nil
}

func (s *fakeSlotStore) ReplaceDay(_ context.Context, garageID, day string, slots []*models.GarageScheduleSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Stage on a copy so a mid-batch failure leaves the store untouched,
	// mirroring the transactional rollback of the real store.
	staged := make(map[string]models.GarageScheduleSlot, len(s.slots))
	for id, slot := range s.slots {
		if slot.GarageID == garageID && slot.DayOfWeek == day {
			slot.IsActive = false
		}
		staged[id] = slot
	}
	for _, slot := range slots {
		for _, existing := range staged {
			if existing.GarageID == slot.GarageID && existing.DayOfWeek == slot.DayOfWeek && existing.IsActive &&
				existing.Overlaps(slot.StartTime, slot.EndTime) {
				return scheduleRepo.ErrSlotOverlap
			}
		}
		staged[slot.ID] = *slot
	}
	s.slots = staged
	return nil
}

func (s *fakeSlotStore) Deactivate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("slot %s not found", id)
	}
	slot.IsActive = false
	s.slots[id] = slot
	return nil
}

// fakeAvailabilityCache is an in-memory AvailabilityCache that records sets
// and invalidations.
type fakeAvailabilityCache struct {
	entries map[string][]models.AvailableSlot
	sets    int
}

func newFakeAvailabilityCache() *fakeAvailabilityCache {
	return &fakeAvailabilityCache{entries: make(map[string][]models.AvailableSlot)}
}

func (c *fakeAvailabilityCache) Get(_ context.Context, garageID, date string) ([]models.AvailableSlot, bool) {
	slots, ok := c.entries[garageID+":"+date]
	return slots, ok
}

func (c *fakeAvailabilityCache) Set(_ context.Context, garageID, date string, slots []models.AvailableSlot) {
	c.entries[garageID+":"+date] = append([]models.AvailableSlot(nil), slots...)
	c.sets++
}

func (c *fakeAvailabilityCache) InvalidateDate(_ context.Context, garageID, date string) {
	delete(c.entries, garageID+":"+date)
}

func (c *fakeAvailabilityCache) InvalidateGarage(_ context.Context, garageID string) {
	for key := range c.entries {
		if strings.HasPrefix(key, garageID+":") {
			delete(c.entries, key)
		}
	}
}

// fakeBookingCounter is an in-memory AppointmentRepository; availability only
// needs the window count.
type fakeBookingCounter struct {
	appts []models.Appointment
}

func (s *fakeBookingCounter) book(garageID, slotID, status string, at time.Time) {
	s.appts = append(s.appts, models.Appointment{
		ID:              fmt.Sprintf("appt-%d", len(s.appts)+1),
		UserID:          "user-1",
		GarageID:        garageID,
		ScheduleSlotID:  slotID,
		OrderID:         "order-1",
		AppointmentTime: at,
		Status:          status,
	})
}

func (s *fakeBookingCounter) GetByID(id string) (*models.Appointment, error) {
	for _, appt := range s.appts {
		if appt.ID == id {
			return &appt, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingCounter) GetAll() ([]models.Appointment, error) {
	return append([]models.Appointment(nil), s.appts...), nil
}

func (s *fakeBookingCounter) CountInWindow(_ context.Context, garageID, slotID string, from, to time.Time, excludeID string) (int64, error) {
	var count int64
	for _, appt := range s.appts {
		if appt.GarageID != garageID || appt.ScheduleSlotID != slotID {
			continue
		}
		if appt.Status == models.AppointmentStatusCanceled {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if appt.AppointmentTime.Before(from) || !appt.AppointmentTime.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *fakeBookingCounter) Create(appt *models.Appointment) error {
	s.appts = append(s.appts, *appt)
	return nil
}

func (s *fakeBookingCounter) CreateWithCapacityCheck(_ context.Context, appt *models.Appointment, _ *models.GarageScheduleSlot) error {
	s.appts = append(s.appts, *appt)
	return nil
}

func (s *fakeBookingCounter) Update(appt *models.Appointment) error {
	for i := range s.appts {
		if s.appts[i].ID == appt.ID {
			s.appts[i] = *appt
			return nil
		}
	}
	return fmt.Errorf("appointment %s not found", appt.ID)
}

func (s *fakeBookingCounter) UpdateWithCapacityCheck(_ context.Context, appt *models.Appointment, _ *models.GarageScheduleSlot) error {
	return s.Update(appt)
}

func (s *fakeBookingCounter) Delete(id string) error {
	for i := range s.appts {
		if s.appts[i].ID == id {
			s.appts = append(s.appts[:i], s.appts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("appointment %s not found", id)
}
