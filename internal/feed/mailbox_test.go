package feed

import "testing"

func TestMailboxLatestWins(t *testing.T) {
	var m Mailbox

	if _, ok := m.Take(); ok {
		t.Fatal("empty mailbox returned a value")
	}

	m.Put("first")
	m.Put("second")

	got, ok := m.Take()
	if !ok || got != "second" {
		t.Errorf("Take()=(%q, %v); want (second, true)", got, ok)
	}

	if _, ok := m.Take(); ok {
		t.Error("mailbox should be empty after Take")
	}
}
