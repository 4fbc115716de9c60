package main

import (
	"math/rand"
	"testing"
	"time"

	"when3meet/services/slotgrid"
)

func TestSeedDays(t *testing.T) {
	month, year, days := seedDays(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), 3)
	if month != time.March || year != 2025 || len(days) != 3 || days[0] != 11 || days[2] != 13 {
		t.Errorf("got %v %d %v", month, year, days)
	}

	month, year, days = seedDays(time.Date(2025, time.December, 30, 8, 0, 0, 0, time.UTC), 4)
	if month != time.January || year != 2026 || days[0] != 1 || days[3] != 4 {
		t.Errorf("rollover got %v %d %v", month, year, days)
	}

	_, _, days = seedDays(time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC), 40)
	if len(days) > 31 {
		t.Errorf("days = %d", len(days))
	}
}

func TestRandomSlotsFitGrid(t *testing.T) {
	w, err := slotgrid.NewWindow([]int{10, 11, 12}, time.March, 2025, "09:00", "17:00", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		slots := randomSlots(rng, w.Days(), w.TotalSlots())
		if _, err := slotgrid.DecodeDays(w, slots); err != nil {
			t.Fatalf("random slots rejected: %v", err)
		}
	}
}
