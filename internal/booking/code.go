package booking

import "strings"

// AppointmentCode derives the human-readable reference for an appointment
// from a fragment of its opaque id, the bank name and the slot label, with
// all whitespace stripped.
func AppointmentCode(id, bankName, slot string) string {
	fragment := id
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	code := strings.ToUpper(fragment) + "-" + bankName + "-" + slot
	return strings.Join(strings.Fields(code), "")
}
