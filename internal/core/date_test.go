package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-10", "2024-02-10", true},
		{"10/02/2024", "2024-02-10", true},
		{"10-02-2024", "2024-02-10", true},
		{"2024/02/10", "2024-02-10", true},
		{"20240210", "2024-02-10", true},
		{"03/15/2024", "2024-03-15", true}, // US order, after DD/MM fails
		{"", "", false},
		{"not a date", "", false},
		{"2024-13-40", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseDate(%q) expected error, got %s", tc.in, got.ISO())
			}
			continue
		}
		if got.ISO() != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got.ISO(), tc.want)
		}
	}
}

func TestDateUnmarshalLenient(t *testing.T) {
	var d Date
	if err := d.UnmarshalJSON([]byte(`"garbage"`)); err != nil {
		t.Fatalf("lenient unmarshal returned error: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("malformed date should decode to zero, got %s", d.ISO())
	}

	if err := d.UnmarshalJSON([]byte(`"2024-01-15"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.ISO() != "2024-01-15" {
		t.Fatalf("got %s, want 2024-01-15", d.ISO())
	}
}

func TestDateAfterDay(t *testing.T) {
	a := NewDate(2024, 4, 10)
	b := NewDate(2024, 4, 28)
	if !b.AfterDay(a) {
		t.Fatal("apr 28 should be after apr 10")
	}
	if a.AfterDay(a) {
		t.Fatal("a day is not after itself")
	}
}
