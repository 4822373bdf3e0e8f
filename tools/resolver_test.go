package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const contactsFixture = `[
	{"id":"111@c.us","name":"Alice Smith","type":"user"},
	{"id":"222@c.us","name":"alice cooper","type":"user"},
	{"id":"333@g.us","name":"Family","type":"group"}
]`

func TestResolveDigitsWithoutNetwork(t *testing.T) {
	gw := newFakeGateway()
	got, err := NewResolver(gw).Resolve(context.Background(), "15551234567")
	if err != nil {
		t.Fatal(err)
	}
	if got != "15551234567@c.us" {
		t.Errorf("Resolve = %q", got)
	}
	if gw.count("getContacts") != 0 {
		t.Error("digits must not fetch contacts")
	}
}

func TestResolveChatIDPassesThrough(t *testing.T) {
	gw := newFakeGateway()
	r := NewResolver(gw)
	for _, id := range []string{"123@c.us", "120363@g.us"} {
		got, err := r.Resolve(context.Background(), id)
		if err != nil || got != id {
			t.Errorf("Resolve(%q) = %q, %v", id, got, err)
		}
	}
	if gw.count("getContacts") != 0 {
		t.Error("chat ids must not fetch contacts")
	}
}

func TestResolveFirstCaseInsensitiveMatch(t *testing.T) {
	gw := newFakeGateway().set("getContacts", 200, contactsFixture)
	r := NewResolver(gw)

	got, err := r.Resolve(context.Background(), "ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if got != "111@c.us" {
		t.Errorf("Resolve(ALICE) = %q, want first match", got)
	}

	got, err = r.Resolve(context.Background(), "fam")
	if err != nil || got != "333@g.us" {
		t.Errorf("Resolve(fam) = %q, %v", got, err)
	}
}

func TestResolveNotFound(t *testing.T) {
	gw := newFakeGateway().set("getContacts", 200, contactsFixture)
	_, err := NewResolver(gw).Resolve(context.Background(), "Bob")
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("err = %v, want ErrContactNotFound", err)
	}
	if err.Error() != "contact 'Bob' not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestResolveFetchFailure(t *testing.T) {
	gw := newFakeGateway().set("getContacts", 401, `{"message":"unauthorized"}`)
	_, err := NewResolver(gw).Resolve(context.Background(), "Alice")
	if !errors.Is(err, ErrContactsFetch) {
		t.Fatalf("err = %v, want ErrContactsFetch", err)
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestResolveTransportError(t *testing.T) {
	gw := newFakeGateway()
	gw.err = errors.New("connection refused")
	if _, err := NewResolver(gw).Resolve(context.Background(), "Alice"); err == nil {
		t.Error("expected transport error")
	}
}

func TestResolveRejectsEmptyReference(t *testing.T) {
	for _, ref := range []string{"", "   ", "\t"} {
		gw := newFakeGateway().set("getContacts", 200, contactsFixture)
		got, err := NewResolver(gw).Resolve(context.Background(), ref)
		if !errors.Is(err, ErrEmptyReference) {
			t.Errorf("Resolve(%q) = %q, %v, want ErrEmptyReference", ref, got, err)
		}
		if gw.count("getContacts") != 0 {
			t.Errorf("Resolve(%q) fetched contacts", ref)
		}
	}
}
