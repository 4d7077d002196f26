package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"

	appointmentRepo "garagehub/database/repository/appointment"
	"garagehub/models"
	"garagehub/utils"
)

// fakeSlotStore is an in-memory ScheduleRepository good enough for booking
// validation: only lookup is exercised here.
type fakeSlotStore struct {
	slots map[string]models.GarageScheduleSlot
}

func newFakeSlotStore(slots ...models.GarageScheduleSlot) *fakeSlotStore {
	s := &fakeSlotStore{slots: make(map[string]models.GarageScheduleSlot)}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

func (s *fakeSlotStore) GetByID(id string) (*models.GarageScheduleSlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (s *fakeSlotStore) GetActiveByGarageAndDay(garageID, day string) ([]models.GarageScheduleSlot, error) {
	var out []models.GarageScheduleSlot
	for _, slot := range s.slots {
		if slot.GarageID == garageID && slot.DayOfWeek == day && slot.IsActive {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *fakeSlotStore) GetActiveByGarage(garageID string) ([]models.GarageScheduleSlot, error) {
	var out []models.GarageScheduleSlot
	for _, slot := range s.slots {
		if slot.GarageID == garageID && slot.IsActive {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *fakeSlotStore) CreateIfNoOverlap(_ context.Context, slot *models.GarageScheduleSlot) error {
	s.slots[slot.ID] = *slot
	return nil
}

func (s *fakeSlotStore) ReplaceDay(_ context.Context, garageID, day string, slots []*models.GarageScheduleSlot) error {
	for id, slot := range s.slots {
		if slot.GarageID == garageID && slot.DayOfWeek == day {
			slot.IsActive = false
			s.slots[id] = slot
		}
	}
	for _, slot := range slots {
		s.slots[slot.ID] = *slot
	}
	return nil
}

func (s *fakeSlotStore) Deactivate(id string) error {
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("slot %s not found", id)
	}
	slot.IsActive = false
	s.slots[id] = slot
	return nil
}

// fakeAppointmentStore is an in-memory AppointmentRepository mirroring the
// real store's guard semantics: capacity-guarded writes for a slot are
// serialized (the store does this with a write conflict on the slot
// document, the fake with a mutex) so the recount always sees committed
// bookings.
type fakeAppointmentStore struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appts: make(map[string]models.Appointment)}
}

func (s *fakeAppointmentStore) GetByID(id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appts[id]
	if !ok {
		return nil, nil
	}
	return &appt, nil
}

func (s *fakeAppointmentStore) GetAll() ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, appt := range s.appts {
		out = append(out, appt)
	}
	return out, nil
}

func (s *fakeAppointmentStore) countLocked(garageID, slotID string, from, to time.Time, excludeID string) int64 {
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
	return count
}

func (s *fakeAppointmentStore) CountInWindow(_ context.Context, garageID, slotID string, from, to time.Time, excludeID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(garageID, slotID, from, to, excludeID), nil
}

func (s *fakeAppointmentStore) Create(appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts[appt.ID] = *appt
	return nil
}

func (s *fakeAppointmentStore) CreateWithCapacityCheck(_ context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error {
	from, to, err := utils.DayWindow(appt.AppointmentTime, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countLocked(appt.GarageID, slot.ID, from, to, "") >= int64(slot.MaxBookings) {
		return appointmentRepo.ErrCapacityFull
	}
	s.appts[appt.ID] = *appt
	return nil
}

func (s *fakeAppointmentStore) Update(appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(appt)
}

func (s *fakeAppointmentStore) updateLocked(appt *models.Appointment) error {
	if _, ok := s.appts[appt.ID]; !ok {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	s.appts[appt.ID] = *appt
	return nil
}

func (s *fakeAppointmentStore) UpdateWithCapacityCheck(_ context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error {
	from, to, err := utils.DayWindow(appt.AppointmentTime, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countLocked(appt.GarageID, slot.ID, from, to, appt.ID) >= int64(slot.MaxBookings) {
		return appointmentRepo.ErrCapacityFull
	}
	return s.updateLocked(appt)
}

func (s *fakeAppointmentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appts[id]; !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	delete(s.appts, id)
	return nil
}

// fakeNotifier records confirmation dispatches.
type fakeNotifier struct {
	confirmed []models.Appointment
	err       error
}

func (n *fakeNotifier) NotifyAppointmentConfirmed(appt models.Appointment) error {
	if n.err != nil {
		return n.err
	}
	n.confirmed = append(n.confirmed, appt)
	return nil
}

// fakeInvalidator records the garage+date pairs whose cached availability
// was dropped.
type fakeInvalidator struct {
	dropped []string
}

func (f *fakeInvalidator) InvalidateDate(_ context.Context, garageID, date string) {
	f.dropped = append(f.dropped, garageID+"/"+date)
}
