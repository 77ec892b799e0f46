package messages

import (
	"strings"
	"testing"
)

func TestSubject(t *testing.T) {
	c, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Subject("EME 150A"); got != "EME 150A Midterm Reflection" {
		t.Errorf("Subject = %q", got)
	}
}

func TestBodyStandardVariant(t *testing.T) {
	c, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	body := c.Body("Ana", "", "")
	if !strings.HasPrefix(body, "Ana,\n\nI've attached") {
		t.Errorf("standard body should go straight to the attachment line, got prefix %q", body[:min(40, len(body))])
	}
	if strings.Contains(body, "below average") {
		t.Error("standard body must not contain the encouragement paragraph")
	}
}

func TestBodyEncouragementVariant(t *testing.T) {
	c, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	body := c.Body("Ana", c.Encouragement(), "")
	if !strings.Contains(body, "below average") {
		t.Error("encouragement body should contain the cover paragraph")
	}
	// Cover paragraph sits between the salutation and the attachment line.
	sal := strings.Index(body, "Ana,")
	cover := strings.Index(body, "below average")
	attach := strings.Index(body, "I've attached")
	if !(sal < cover && cover < attach) {
		t.Errorf("body sections out of order: %d %d %d", sal, cover, attach)
	}
}

func TestBodySignature(t *testing.T) {
	c, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	body := c.Body("Ana", "", "Dr. Moore\nMechanical Engineering")
	if !strings.HasSuffix(body, "Dr. Moore\nMechanical Engineering") {
		t.Errorf("signature not appended: %q", body)
	}
}

func TestSpanishLocale(t *testing.T) {
	c, err := New("es")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Subject("EME 150A"); !strings.Contains(got, "EME 150A") {
		t.Errorf("Subject = %q", got)
	}
	if got := c.Encouragement(); !strings.Contains(got, "media") {
		t.Errorf("unexpected es encouragement: %q", got)
	}
}

func TestUnknownLanguage(t *testing.T) {
	if _, err := New("not a tag"); err == nil {
		t.Fatal("expected error for invalid language tag")
	}
}
