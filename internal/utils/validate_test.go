package utils

import "testing"

func TestValidUsername(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"alice", true},
		{"al", false},
		{"abc", true},
		{"user_name_42", true},
		{"has space", false},
		{"dash-ed", false},
		{"", false},
		{"abcdefghijklmnopqrstuvwxyz0123", true},   // 30 chars
		{"abcdefghijklmnopqrstuvwxyz01234", false}, // 31 chars
	}
	for _, c := range cases {
		if got := ValidUsername(c.in); got != c.ok {
			t.Errorf("ValidUsername(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestValidNewPassword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"Secret123", true},
		{"Short1A", false},   // 7 chars
		{"alllower1", false}, // no uppercase
		{"ALLUPPER1", false}, // no lowercase
		{"NoDigitsHere", false},
		{"Password1", true},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidNewPassword(c.in); got != c.ok {
			t.Errorf("ValidNewPassword(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}
