package booking

import (
	"strings"
	"testing"
)

func TestTimeSlots_FixedSet(t *testing.T) {
	want := []string{
		"10:00 AM - 10:30 AM",
		"10:30 AM - 11:00 AM",
		"11:00 AM - 11:30 AM",
		"11:30 AM - 12:00 PM",
		"12:00 PM - 12:30 PM",
		"12:30 PM - 1:00 PM",
		"2:00 PM - 2:30 PM",
		"2:30 PM - 3:00 PM",
		"3:00 PM - 3:30 PM",
		"3:30 PM - 4:00 PM",
	}

	got := TimeSlots()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTimeSlots_Deterministic(t *testing.T) {
	first := TimeSlots()
	second := TimeSlots()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between calls: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestTimeSlots_ExcludesLunchHour(t *testing.T) {
	for _, slot := range TimeSlots() {
		h, m, err := SlotStart(slot)
		if err != nil {
			t.Fatalf("SlotStart(%q): %v", slot, err)
		}
		start := h*60 + m
		end := start + slotMinutes
		if start < 14*60 && end > 13*60 {
			t.Errorf("slot %q overlaps the 13:00-14:00 lunch closure", slot)
		}
	}
}

func TestTimeSlots_Contiguous(t *testing.T) {
	slots := TimeSlots()
	for i := 1; i < len(slots); i++ {
		prevH, prevM, err := SlotStart(slots[i-1])
		if err != nil {
			t.Fatalf("SlotStart(%q): %v", slots[i-1], err)
		}
		curH, curM, err := SlotStart(slots[i])
		if err != nil {
			t.Fatalf("SlotStart(%q): %v", slots[i], err)
		}

		gap := (curH*60 + curM) - (prevH*60 + prevM)
		// Consecutive except across the lunch closure.
		if prevH*60+prevM == 12*60+30 {
			if gap != 90 {
				t.Errorf("expected 90 minute gap across lunch after %q, got %d", slots[i-1], gap)
			}
			continue
		}
		if gap != slotMinutes {
			t.Errorf("expected %d minute gap after %q, got %d", slotMinutes, slots[i-1], gap)
		}
	}
}

func TestSlotStart(t *testing.T) {
	tests := []struct {
		label   string
		hour    int
		minute  int
		wantErr bool
	}{
		{label: "10:00 AM - 10:30 AM", hour: 10},
		{label: "12:30 PM - 1:00 PM", hour: 12, minute: 30},
		{label: "3:30 PM - 4:00 PM", hour: 15, minute: 30},
		{label: "garbage", wantErr: true},
		{label: "25:00 XX - 26:00 XX", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tt := range tests {
		h, m, err := SlotStart(tt.label)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SlotStart(%q): expected error", tt.label)
			}
			continue
		}
		if err != nil {
			t.Errorf("SlotStart(%q): %v", tt.label, err)
			continue
		}
		if h != tt.hour || m != tt.minute {
			t.Errorf("SlotStart(%q) = %d:%02d, expected %d:%02d", tt.label, h, m, tt.hour, tt.minute)
		}
	}
}

func TestIsValidSlot(t *testing.T) {
	for _, slot := range TimeSlots() {
		if !IsValidSlot(slot) {
			t.Errorf("expected %q to be valid", slot)
		}
	}
	for _, slot := range []string{"1:00 PM - 1:30 PM", "9:30 AM - 10:00 AM", "10:00 am - 10:30 am", ""} {
		if IsValidSlot(slot) {
			t.Errorf("expected %q to be invalid", slot)
		}
	}
}

func TestAppointmentCode(t *testing.T) {
	code := AppointmentCode("a1b2c3d4-0000-0000-0000-000000000000", "State Bank of India", "10:00 AM - 10:30 AM")
	if code != "A1B2C3D4-StateBankofIndia-10:00AM-10:30AM" {
		t.Fatalf("unexpected code %q", code)
	}
	if strings.ContainsAny(code, " \t\n") {
		t.Fatalf("code %q contains whitespace", code)
	}
}

func TestAppointmentCode_ShortID(t *testing.T) {
	code := AppointmentCode("abc", "Bank", "2:00 PM - 2:30 PM")
	if !strings.HasPrefix(code, "ABC-") {
		t.Fatalf("expected short id kept whole, got %q", code)
	}
}
