package voxray

import (
	"encoding/json"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#87ceeb":  0x87ceeb,
		"87CEEB":   0x87ceeb,
		"0x000001": 1,
		" #ffffff": 0xffffff,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %s, want %s", in, got, want)
		}
	}
	for _, bad := range []string{"#fff", "zzzzzz", ""} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q): expected error", bad)
		}
	}
}

func TestColorChannels(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 || c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Fatalf("channels wrong: %s", c)
	}
	if got := Color(0xff0000).Normalised(); got != (Vec3{1, 0, 0}) {
		t.Fatalf("Normalised = %+v", got)
	}
	if got := Color(0x808080).Normalised(); !vecAlmostEq(got, Vec3{128.0 / 255, 128.0 / 255, 128.0 / 255}, 1e-12) {
		t.Fatalf("Normalised = %+v", got)
	}
}

func TestColorJSON(t *testing.T) {
	var v struct {
		A Color `json:"a"`
		B Color `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"#ff8000","b":255}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A != 0xff8000 || v.B != 0xff {
		t.Fatalf("decoded %+v", v)
	}
	out, err := json.Marshal(v.A)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"#ff8000"` {
		t.Fatalf("encoded %s", out)
	}
	if err := json.Unmarshal([]byte(`{"a":"#ff80"}`), &v); err == nil {
		t.Fatal("expected error for short hex")
	}
}
