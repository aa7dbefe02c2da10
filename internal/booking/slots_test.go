package booking

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lunchCanteen(capacity int) models.Canteen {
	return models.Canteen{
		ID:       "c-1",
		Capacity: capacity,
		WorkingHours: []models.WorkingHour{
			{Meal: models.MealBreakfast, From: "07:00", To: "10:00"},
			{Meal: models.MealLunch, From: "11:00", To: "15:00"},
		},
	}
}

func slotRange(t *testing.T, startDate, endDate, startTime, endTime string, duration int) SlotRange {
	t.Helper()
	rng, err := SlotQuery{
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  intPtr(duration),
	}.Parse(time.UTC)
	require.NoError(t, err)
	return rng
}

func startTimes(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Date + " " + s.StartTime
	}
	return out
}

func TestComputeSlots_LunchHour(t *testing.T) {
	rng := slotRange(t, testDate, testDate, "11:00", "12:00", 30)

	slots := slices.Collect(ComputeSlots(lunchCanteen(10), nil, rng))

	assert.Equal(t, []Slot{
		{Date: testDate, Meal: models.MealLunch, StartTime: "11:00", RemainingCapacity: 10},
		{Date: testDate, Meal: models.MealLunch, StartTime: "11:30", RemainingCapacity: 10},
	}, slots)
}

func TestComputeSlots_SkipsCandidatesOutsideBlocks(t *testing.T) {
	rng := slotRange(t, testDate, testDate, "09:00", "12:00", 30)

	slots := slices.Collect(ComputeSlots(lunchCanteen(10), nil, rng))

	assert.Equal(t, []string{
		testDate + " 09:00",
		testDate + " 09:30",
		testDate + " 11:00",
		testDate + " 11:30",
	}, startTimes(slots))
	assert.Equal(t, models.MealBreakfast, slots[0].Meal)
	assert.Equal(t, models.MealLunch, slots[2].Meal)
}

func TestComputeSlots_HourSteps(t *testing.T) {
	rng := slotRange(t, testDate, testDate, "08:30", "12:00", 60)

	slots := slices.Collect(ComputeSlots(lunchCanteen(10), nil, rng))

	// 09:30-10:30 leaves breakfast and 10:30-11:30 starts before lunch.
	assert.Equal(t, []string{testDate + " 08:30", testDate + " 11:30"}, startTimes(slots))
}

func TestComputeSlots_RemainingCapacity(t *testing.T) {
	reservations := []models.Reservation{
		{ID: "a", CanteenID: "c-1", Date: testDate, Time: "11:00", Duration: 60, Status: models.ReservationActive},
		{ID: "b", CanteenID: "c-1", Date: testDate, Time: "11:30", Duration: 30, Status: models.ReservationActive},
		{ID: "c", CanteenID: "c-1", Date: testDate, Time: "11:30", Duration: 30, Status: models.ReservationActive},
		{ID: "d", CanteenID: "c-1", Date: testDate, Time: "11:30", Duration: 30, Status: models.ReservationCancelled},
		{ID: "e", CanteenID: "c-2", Date: testDate, Time: "11:30", Duration: 30, Status: models.ReservationActive},
		{ID: "f", CanteenID: "c-1", Date: "2025-12-06", Time: "11:30", Duration: 30, Status: models.ReservationActive},
	}
	rng := slotRange(t, testDate, testDate, "11:00", "12:30", 30)

	slots := slices.Collect(ComputeSlots(lunchCanteen(2), reservations, rng))

	require.Len(t, slots, 3)
	assert.Equal(t, 1, slots[0].RemainingCapacity, "11:00 has the hour long booking")
	assert.Equal(t, 0, slots[1].RemainingCapacity, "11:30 is over capacity and clamps at zero")
	assert.Equal(t, 2, slots[2].RemainingCapacity, "12:00 only touches earlier bookings")
}

func TestComputeSlots_DateOrdering(t *testing.T) {
	rng := slotRange(t, "2025-12-30", "2026-01-01", "11:00", "12:00", 30)

	slots := slices.Collect(ComputeSlots(lunchCanteen(3), nil, rng))

	assert.Equal(t, []string{
		"2025-12-30 11:00", "2025-12-30 11:30",
		"2025-12-31 11:00", "2025-12-31 11:30",
		"2026-01-01 11:00", "2026-01-01 11:30",
	}, startTimes(slots))
}

func TestComputeSlots_EmptyRanges(t *testing.T) {
	canteen := lunchCanteen(3)

	t.Run("ReversedDates", func(t *testing.T) {
		rng := slotRange(t, "2025-12-06", testDate, "11:00", "12:00", 30)
		assert.Empty(t, slices.Collect(ComputeSlots(canteen, nil, rng)))
	})

	t.Run("ReversedTimes", func(t *testing.T) {
		rng := slotRange(t, testDate, testDate, "12:00", "11:00", 30)
		assert.Empty(t, slices.Collect(ComputeSlots(canteen, nil, rng)))
	})

	t.Run("NoWorkingHours", func(t *testing.T) {
		rng := slotRange(t, testDate, testDate, "00:00", "23:30", 30)
		assert.Empty(t, slices.Collect(ComputeSlots(models.Canteen{Capacity: 3}, nil, rng)))
	})
}

func TestComputeSlots_Restartable(t *testing.T) {
	rng := slotRange(t, testDate, "2025-12-06", "07:00", "15:00", 30)
	seq := ComputeSlots(lunchCanteen(3), nil, rng)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2*(6+8))

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSlotQuery_Parse(t *testing.T) {
	full := SlotQuery{StartDate: testDate, EndDate: testDate, StartTime: "11:00", EndTime: "12:00", Duration: intPtr(30)}

	_, err := full.Parse(time.UTC)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(q *SlotQuery)
		want   error
	}{
		{"no start date", func(q *SlotQuery) { q.StartDate = "" }, ErrMissingQueryParameters},
		{"no end date", func(q *SlotQuery) { q.EndDate = "" }, ErrMissingQueryParameters},
		{"no start time", func(q *SlotQuery) { q.StartTime = "" }, ErrMissingQueryParameters},
		{"no end time", func(q *SlotQuery) { q.EndTime = "" }, ErrMissingQueryParameters},
		{"no duration", func(q *SlotQuery) { q.Duration = nil }, ErrMissingQueryParameters},
		{"missing beats invalid", func(q *SlotQuery) {
			*q = SlotQuery{EndDate: testDate, StartTime: "11:00", EndTime: "12:00", Duration: intPtr(45)}
		}, ErrMissingQueryParameters},
		{"bad duration", func(q *SlotQuery) { q.Duration = intPtr(45) }, ErrInvalidDuration},
		{"bad date", func(q *SlotQuery) { q.EndDate = "tomorrow" }, ErrInvalidDate},
		{"bad time", func(q *SlotQuery) { q.EndTime = "25:00" }, ErrInvalidTimeFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := full
			tc.mutate(&q)
			_, err := q.Parse(time.UTC)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_CanteenSlots(t *testing.T) {
	svc, _ := newTestService(t)
	canteen := seedCanteen(t, svc, 2)
	ctx := context.Background()

	_, err := reserve(svc, seedStudent(t, svc).ID, canteen.ID, testDate, "11:00", 30)
	require.NoError(t, err)

	q := SlotQuery{StartDate: testDate, EndDate: testDate, StartTime: "11:00", EndTime: "12:00", Duration: intPtr(30)}

	seq, err := svc.CanteenSlots(ctx, canteen.ID, q)
	require.NoError(t, err)
	slots := slices.Collect(seq)
	require.Len(t, slots, 2)
	assert.Equal(t, 1, slots[0].RemainingCapacity)
	assert.Equal(t, 2, slots[1].RemainingCapacity)

	_, err = svc.CanteenSlots(ctx, "missing", q)
	assert.ErrorIs(t, err, ErrCanteenNotFound)

	q.Duration = intPtr(15)
	_, err = svc.CanteenSlots(ctx, canteen.ID, q)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestService_AllSlots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	first := seedCanteen(t, svc, 1)
	second := seedCanteen(t, svc, 4)

	_, err := reserve(svc, seedStudent(t, svc).ID, first.ID, testDate, "11:30", 30)
	require.NoError(t, err)

	groups, err := svc.AllSlots(ctx, SlotQuery{
		StartDate: testDate, EndDate: testDate, StartTime: "11:00", EndTime: "12:00", Duration: intPtr(30),
	})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, first.ID, groups[0].Canteen.ID)
	assert.Equal(t, second.ID, groups[1].Canteen.ID)

	firstSlots := slices.Collect(groups[0].Slots)
	require.Len(t, firstSlots, 2)
	assert.Equal(t, 1, firstSlots[0].RemainingCapacity)
	assert.Equal(t, 0, firstSlots[1].RemainingCapacity)

	for _, s := range slices.Collect(groups[1].Slots) {
		assert.Equal(t, 4, s.RemainingCapacity)
	}
}
