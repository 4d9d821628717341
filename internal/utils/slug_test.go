package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Roof Replacement":        "roof-replacement",
		"Gutter & Downspouts":     "gutter-and-downspouts",
		"Repair / Restoration":    "repair-restoration",
		"  Storm  Damage  ":       "storm-damage",
		"Owner's Inspection":      "owners-inspection",
		"Émergency":               "mergency",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
