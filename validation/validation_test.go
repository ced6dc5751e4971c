package validation

import "testing"

func TestRequired(t *testing.T) {
	e := Errors{}
	Required("name", "  ", "required", e)
	Required("email", "a@b.co", "required", e)
	if !e.Has("name") {
		t.Errorf("expected name error")
	}
	if e.Has("email") {
		t.Errorf("unexpected email error")
	}
}

func TestOneOf(t *testing.T) {
	e := Errors{}
	OneOf("status", "archived", []string{"pending", "paid"}, "bad status", e)
	if got := e["status"]; len(got) != 1 || got[0] != "bad status" {
		t.Fatalf("status errors = %v", got)
	}
	e = Errors{}
	OneOf("status", "paid", []string{"pending", "paid"}, "bad status", e)
	if !e.Empty() {
		t.Fatalf("expected no errors, got %v", e)
	}
}

func TestPositive(t *testing.T) {
	tests := []struct {
		val  int64
		fail bool
	}{
		{1, false},
		{0, true},
		{-100, true},
	}
	for _, tt := range tests {
		e := Errors{}
		Positive("amount", tt.val, "positive", e)
		if e.Has("amount") != tt.fail {
			t.Errorf("Positive(%d) failed = %v, want %v", tt.val, e.Has("amount"), tt.fail)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		fail bool
	}{
		{"lee@robinson.com", false},
		{"not-an-email", true},
		{"Lee <lee@robinson.com>", true},
		{"", true},
	}
	for _, tt := range tests {
		e := Errors{}
		Email("email", tt.in, "bad email", e)
		if e.Has("email") != tt.fail {
			t.Errorf("Email(%q) failed = %v, want %v", tt.in, e.Has("email"), tt.fail)
		}
	}
}

func TestAddAccumulates(t *testing.T) {
	e := Errors{}
	e.Add("password", "too short")
	e.Add("password", "missing digit")
	if len(e["password"]) != 2 {
		t.Fatalf("expected 2 messages, got %v", e["password"])
	}
}
