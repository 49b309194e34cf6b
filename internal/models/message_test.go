package models

import "testing"

func TestConversationID_OrderIndependent(t *testing.T) {
	a := ConversationID("user-a", "user-b")
	b := ConversationID("user-b", "user-a")
	if a != b {
		t.Errorf("Expected order-independent conversation id, got %q and %q", a, b)
	}
}

func TestConversationID_Canonical(t *testing.T) {
	got := ConversationID("zed", "amy")
	want := "amy__zed"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
