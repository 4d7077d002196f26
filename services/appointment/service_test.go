package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"garagehub/models"
)

const (
	testGarageID = "garage-1"
	testSlotID   = "slot-1"
)

// mondaySlot is a monday 09:00-12:00 window; 2026-03-02 is a Monday.
func mondaySlot(maxBookings int) models.GarageScheduleSlot {
	return models.GarageScheduleSlot{
		ID:          testSlotID,
		GarageID:    testGarageID,
		DayOfWeek:   "monday",
		StartTime:   "09:00:00",
		EndTime:     "12:00:00",
		MaxBookings: maxBookings,
		IsActive:    true,
	}
}

func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func newTestService(slot models.GarageScheduleSlot) (*DefaultAppointmentService, *fakeAppointmentStore, *fakeNotifier) {
	store := newFakeAppointmentStore()
	notifier := &fakeNotifier{}
	svc := &DefaultAppointmentService{
		Repo:     store,
		Slots:    newFakeSlotStore(slot),
		Notifier: notifier,
	}
	return svc, store, notifier
}

func slotBooking(at time.Time) models.Appointment {
	return models.Appointment{
		UserID:          "user-1",
		GarageID:        testGarageID,
		ScheduleSlotID:  testSlotID,
		OrderID:         "order-1",
		AppointmentTime: at,
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))

	cases := []struct {
		name string
		appt models.Appointment
	}{
		{"missing user", models.Appointment{GarageID: testGarageID, OrderID: "o", AppointmentTime: mondayAt(10, 0)}},
		{"missing garage", models.Appointment{UserID: "u", OrderID: "o", AppointmentTime: mondayAt(10, 0)}},
		{"missing order", models.Appointment{UserID: "u", GarageID: testGarageID, AppointmentTime: mondayAt(10, 0)}},
		{"missing time", models.Appointment{UserID: "u", GarageID: testGarageID, OrderID: "o"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.appt)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))

	created, err := svc.Create(context.Background(), slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.AppointmentStatusPending {
		t.Fatalf("status = %q, want %q", created.Status, models.AppointmentStatusPending)
	}
	if created.ID == "" {
		t.Fatal("expected a generated ID")
	}
}

func TestCreateEnforcesSlotCapacity(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, slotBooking(mondayAt(9, 30+i))); err != nil {
			t.Fatalf("booking %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Create(ctx, slotBooking(mondayAt(11, 0)))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded on fourth booking, got %v", err)
	}
}

func TestCreateRejectsTimeOutsideSlotWindow(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	// 08:30 is before the 09:00 opening.
	_, err := svc.Create(ctx, slotBooking(mondayAt(8, 30)))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange at 08:30, got %v", err)
	}

	// The window is half-open: exactly end_time is out, exactly start_time is in.
	if _, err := svc.Create(ctx, slotBooking(mondayAt(12, 0))); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange at 12:00, got %v", err)
	}
	if _, err := svc.Create(ctx, slotBooking(mondayAt(9, 0))); err != nil {
		t.Fatalf("expected 09:00 to be accepted, got %v", err)
	}
}

func TestCreateRejectsWrongWeekday(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))

	tuesday := mondayAt(10, 0).AddDate(0, 0, 1)
	_, err := svc.Create(context.Background(), slotBooking(tuesday))
	if !errors.Is(err, ErrDayMismatch) {
		t.Fatalf("expected ErrDayMismatch for a Tuesday booking on a monday slot, got %v", err)
	}
}

func TestCreateRejectsForeignSlot(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	appt := slotBooking(mondayAt(10, 0))
	appt.GarageID = "garage-2"
	if _, err := svc.Create(ctx, appt); !errors.Is(err, ErrGarageMismatch) {
		t.Fatalf("expected ErrGarageMismatch, got %v", err)
	}

	appt = slotBooking(mondayAt(10, 0))
	appt.ScheduleSlotID = "no-such-slot"
	if _, err := svc.Create(ctx, appt); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestCancelFreesCapacity(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(1))
	ctx := context.Background()

	first, err := svc.Create(ctx, slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Create(ctx, slotBooking(mondayAt(11, 0))); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected the slot to be full, got %v", err)
	}

	canceled := models.AppointmentStatusCanceled
	if _, err := svc.Update(ctx, first.ID, models.AppointmentUpdate{Status: &canceled}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.Create(ctx, slotBooking(mondayAt(11, 0))); err != nil {
		t.Fatalf("expected capacity to be freed after cancel, got %v", err)
	}
}

func TestUpdateRescheduleExcludesOwnBooking(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(1))
	ctx := context.Background()

	appt, err := svc.Create(ctx, slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Moving the only booking within the same full slot must not trip the
	// capacity guard on itself.
	newTime := mondayAt(11, 0)
	updated, err := svc.Update(ctx, appt.ID, models.AppointmentUpdate{AppointmentTime: &newTime})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !updated.AppointmentTime.Equal(newTime) {
		t.Fatalf("appointment time = %v, want %v", updated.AppointmentTime, newTime)
	}
}

func TestUpdateRejectsIllegalTransitions(t *testing.T) {
	svc, store, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	appt, err := svc.Create(ctx, slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	completed := models.AppointmentStatusCompleted
	if _, err := svc.Update(ctx, appt.ID, models.AppointmentUpdate{Status: &completed}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected pending -> completed to be rejected, got %v", err)
	}

	// Force the appointment into a terminal state, then try to leave it.
	stored := store.appts[appt.ID]
	stored.Status = models.AppointmentStatusCanceled
	store.appts[appt.ID] = stored

	confirmed := models.AppointmentStatusConfirmed
	if _, err := svc.Update(ctx, appt.ID, models.AppointmentUpdate{Status: &confirmed}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected canceled -> confirmed to be rejected, got %v", err)
	}
}

func TestUpdateUnknownAppointment(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))

	notes := "new notes"
	if _, err := svc.Update(context.Background(), "missing", models.AppointmentUpdate{Notes: &notes}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirmationDispatchesNotification(t *testing.T) {
	svc, _, notifier := newTestService(mondaySlot(3))
	ctx := context.Background()

	// Creating straight into confirmed notifies once.
	appt := slotBooking(mondayAt(9, 30))
	appt.Status = models.AppointmentStatusConfirmed
	created, err := svc.Create(ctx, appt)
	if err != nil {
		t.Fatalf("confirmed create failed: %v", err)
	}
	if len(notifier.confirmed) != 1 || notifier.confirmed[0].ID != created.ID {
		t.Fatalf("expected one notification for %s, got %v", created.ID, notifier.confirmed)
	}

	// A pending booking notifies only when it transitions to confirmed.
	pending, err := svc.Create(ctx, slotBooking(mondayAt(10, 30)))
	if err != nil {
		t.Fatalf("pending create failed: %v", err)
	}
	if len(notifier.confirmed) != 1 {
		t.Fatalf("pending create must not notify, got %d notifications", len(notifier.confirmed))
	}

	confirmed := models.AppointmentStatusConfirmed
	if _, err := svc.Update(ctx, pending.ID, models.AppointmentUpdate{Status: &confirmed}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if len(notifier.confirmed) != 2 {
		t.Fatalf("expected a notification on confirm, got %d", len(notifier.confirmed))
	}

	// Completing an already-confirmed appointment does not re-notify.
	completed := models.AppointmentStatusCompleted
	if _, err := svc.Update(ctx, pending.ID, models.AppointmentUpdate{Status: &completed}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if len(notifier.confirmed) != 2 {
		t.Fatalf("complete must not notify, got %d notifications", len(notifier.confirmed))
	}
}

func TestNotifierFailureDoesNotBlockBooking(t *testing.T) {
	svc, _, notifier := newTestService(mondaySlot(3))
	notifier.err = errors.New("queue down")

	appt := slotBooking(mondayAt(10, 0))
	appt.Status = models.AppointmentStatusConfirmed
	if _, err := svc.Create(context.Background(), appt); err != nil {
		t.Fatalf("create must succeed despite notifier failure, got %v", err)
	}
}

func TestConcurrentBookingsCannotExceedCapacity(t *testing.T) {
	svc, store, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	// Many racing creates for the same occurrence: exactly max_bookings may
	// win, every loser gets the capacity error.
	const attempts = 12
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(minute int) {
			defer wg.Done()
			_, err := svc.Create(ctx, slotBooking(mondayAt(9, minute)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrCapacityExceeded):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 3 || lost != attempts-3 {
		t.Fatalf("%d bookings won, %d lost; want 3 and %d", won, lost, attempts-3)
	}

	count, err := store.CountInWindow(ctx, testGarageID, testSlotID,
		mondayAt(9, 0), mondayAt(12, 0), "")
	if err != nil {
		t.Fatalf("CountInWindow failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("stored bookings = %d, want 3", count)
	}
}

func TestBookingWritesInvalidateAvailability(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))
	inv := &fakeInvalidator{}
	svc.Availability = inv
	ctx := context.Background()

	appt, err := svc.Create(ctx, slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if len(inv.dropped) != 1 || inv.dropped[0] != testGarageID+"/2026-03-02" {
		t.Fatalf("create invalidated %v, want the booked date", inv.dropped)
	}

	// Rescheduling to the next Monday frees capacity on the old occurrence
	// and consumes it on the new one, so both dates are dropped.
	inv.dropped = nil
	nextMonday := mondayAt(10, 0).AddDate(0, 0, 7)
	if _, err := svc.Update(ctx, appt.ID, models.AppointmentUpdate{AppointmentTime: &nextMonday}); err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if len(inv.dropped) != 2 ||
		inv.dropped[0] != testGarageID+"/2026-03-02" ||
		inv.dropped[1] != testGarageID+"/2026-03-09" {
		t.Fatalf("reschedule invalidated %v, want the old and new dates", inv.dropped)
	}

	inv.dropped = nil
	if err := svc.Delete(appt.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(inv.dropped) != 1 || inv.dropped[0] != testGarageID+"/2026-03-09" {
		t.Fatalf("delete invalidated %v, want the freed date", inv.dropped)
	}

	// Bookings without a slot binding have no availability to invalidate.
	inv.dropped = nil
	free := slotBooking(mondayAt(10, 0))
	free.ScheduleSlotID = ""
	if _, err := svc.Create(ctx, free); err != nil {
		t.Fatalf("slotless booking failed: %v", err)
	}
	if len(inv.dropped) != 0 {
		t.Fatalf("slotless create invalidated %v, want nothing", inv.dropped)
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc, _, _ := newTestService(mondaySlot(3))
	ctx := context.Background()

	appt, err := svc.Create(ctx, slotBooking(mondayAt(10, 0)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := svc.Delete(appt.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(appt.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(appt.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
