package validation

import "testing"

type bookingFields struct {
	Date    string `validate:"omitempty,date"`
	Clock   string `validate:"omitempty,clock"`
	Phone   string `validate:"omitempty,phone"`
	Confirm string `validate:"omitempty,rfc3339"`
}

func TestCustomTags(t *testing.T) {
	v := New()

	cases := []struct {
		name    string
		in      bookingFields
		wantErr bool
	}{
		{"valid date", bookingFields{Date: "2099-01-05"}, false},
		{"us-style date rejected", bookingFields{Date: "01/05/2099"}, true},
		{"valid clock", bookingFields{Clock: "09:00"}, false},
		{"clock out of range", bookingFields{Clock: "25:00"}, true},
		{"short phone", bookingFields{Phone: "555"}, false},
		{"formatted phone", bookingFields{Phone: "(123) 456-7890"}, false},
		{"phone with letters", bookingFields{Phone: "call me"}, true},
		{"valid rfc3339", bookingFields{Confirm: "2099-01-05T09:30:00-06:00"}, false},
		{"bare datetime rejected", bookingFields{Confirm: "2099-01-05 09:30"}, true},
	}

	for _, tc := range cases {
		err := v.Struct(tc.in)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
