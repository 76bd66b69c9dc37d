package reservation

import (
	"context"
	"testing"
	"time"

	"shearbook/models"
)

func TestSlotGrid(t *testing.T) {
	shop := testShop()

	sat := SlotGrid(shop, time.Saturday)
	if len(sat) != 16 {
		t.Fatalf("saturday grid has %d slots, want 16: %v", len(sat), sat)
	}
	if sat[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", sat[0])
	}
	// The last slot starts strictly before closing.
	if sat[len(sat)-1] != "16:30" {
		t.Errorf("last slot = %q, want 16:30", sat[len(sat)-1])
	}

	if sun := SlotGrid(shop, time.Sunday); len(sun) != 0 {
		t.Errorf("sunday grid = %v, want empty (closed)", sun)
	}
}

func TestSlotGridDefaultStep(t *testing.T) {
	shop := testShop()
	shop.SlotMinutes = 0 // unset falls back to 30

	grid := SlotGrid(shop, time.Monday)
	if len(grid) != 16 {
		t.Fatalf("monday grid has %d slots, want 16: %v", len(grid), grid)
	}
	if grid[1] != "10:30" {
		t.Errorf("second slot = %q, want 10:30", grid[1])
	}
}

func TestIsSlotAvailable(t *testing.T) {
	shop := testShop()
	janeHours := models.WeeklySchedule{"saturday": {9, 10}}

	cases := []struct {
		name     string
		schedule models.WeeklySchedule
		clock    string
		blocked  []string
		now      time.Time
		want     bool
	}{
		{"open slot", nil, "09:00", nil, testNow, true},
		{"before opening", nil, "08:30", nil, testNow, false},
		{"at closing", nil, "17:00", nil, testNow, false},
		{"off the grid", nil, "09:15", nil, testNow, false},
		{"blocked by a hold", nil, "09:00", []string{"09:00"}, testNow, false},
		{"other slots unaffected by block", nil, "09:30", []string{"09:00"}, testNow, true},
		{"inside past buffer", nil, "09:00",
			nil, time.Date(2025, 3, 1, 8, 50, 0, 0, time.Local), false},
		{"just past the buffer", nil, "09:30",
			nil, time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local), true},
		{"within employee hours", janeHours, "10:30", nil, testNow, true},
		{"outside employee hours", janeHours, "11:00", nil, testNow, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsSlotAvailable(shop, tc.schedule, testDate, tc.clock, tc.blocked, tc.now, 15*time.Minute)
			if got != tc.want {
				t.Errorf("IsSlotAvailable(%s) = %v, want %v", tc.clock, got, tc.want)
			}
		})
	}
}

func TestAvailableSlotsFiltersHolds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.ReserveSlot(ctx, testRequest("10:00", "")); err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}

	open, err := env.svc.AvailableSlots(ctx, testShopID, testDate, "")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(open) != 15 {
		t.Errorf("open slots = %d, want 15", len(open))
	}
	for _, clock := range open {
		if clock == "10:00" {
			t.Error("10:00 still listed as open after reservation")
		}
	}
}

func TestAvailableSlotsEmployeeView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.shops.addEmployee(&models.Employee{
		ID: "jane", ShopID: testShopID, Name: "Jane",
		Schedule: models.WeeklySchedule{"saturday": {9, 10}},
	})

	if _, err := env.svc.ReserveSlot(ctx, testRequest("10:00", "jane")); err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}

	open, err := env.svc.AvailableSlots(ctx, testShopID, testDate, "jane")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	// Jane works 09:00-10:59, giving four grid slots; 10:00 is held.
	want := []string{"09:00", "09:30", "10:30"}
	if len(open) != len(want) {
		t.Fatalf("open slots = %v, want %v", open, want)
	}
	for i, clock := range want {
		if open[i] != clock {
			t.Errorf("open[%d] = %q, want %q", i, open[i], clock)
		}
	}
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	env := newTestEnv(t)

	open, err := env.svc.AvailableSlots(context.Background(), testShopID, "2025-03-02", "")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("open slots on a closed day = %v, want none", open)
	}
}

func TestBlockedTimesScopedByEmployee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.shops.addEmployee(&models.Employee{
		ID: "jane", ShopID: testShopID, Name: "Jane",
		Schedule: models.WeeklySchedule{"saturday": {10}},
	})

	if _, err := env.svc.ReserveSlot(ctx, testRequest("10:00", "jane")); err != nil {
		t.Fatalf("jane ReserveSlot: %v", err)
	}
	if _, err := env.svc.ReserveSlot(ctx, testRequest("11:00", "")); err != nil {
		t.Fatalf("generic ReserveSlot: %v", err)
	}

	janeBlocked, err := env.svc.BlockedTimes(ctx, testShopID, testDate, "jane")
	if err != nil {
		t.Fatalf("BlockedTimes(jane): %v", err)
	}
	if len(janeBlocked) != 1 || janeBlocked[0] != "10:00" {
		t.Errorf("jane blocked = %v, want [10:00]", janeBlocked)
	}

	genericBlocked, err := env.svc.BlockedTimes(ctx, testShopID, testDate, "")
	if err != nil {
		t.Fatalf("BlockedTimes(generic): %v", err)
	}
	if len(genericBlocked) != 1 || genericBlocked[0] != "11:00" {
		t.Errorf("generic blocked = %v, want [11:00]", genericBlocked)
	}
}
