package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) at(i int) recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[i]
}

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]interface{}
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()
	calls := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		calls.mu.Lock()
		calls.calls = append(calls.calls, rec)
		calls.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		APIURL:     srv.URL + "/",
		InstanceID: "1101",
		APIToken:   "tok",
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client, calls
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Options{InstanceID: "1"}); err == nil {
		t.Error("expected error without token")
	}
}

func TestGetStateInstance(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"stateInstance":"authorized"}`)
	})

	resp, err := client.GetStateInstance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.OK() || resp.String() != `{"stateInstance":"authorized"}` {
		t.Errorf("unexpected response %d %s", resp.Code, resp.String())
	}
	got := calls.at(0)
	if got.method != http.MethodGet || got.path != "/waInstance1101/getStateInstance/tok" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
}

func TestSendMessageBody(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"idMessage":"3EB0"}`)
	})

	if _, err := client.SendMessage(context.Background(), "31612345@c.us", "hello"); err != nil {
		t.Fatal(err)
	}
	got := calls.at(0)
	if got.method != http.MethodPost || got.path != "/waInstance1101/sendMessage/tok" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	if got.body["chatId"] != "31612345@c.us" || got.body["message"] != "hello" {
		t.Errorf("body = %v", got.body)
	}
}

func TestHistoryAndJournals(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	ctx := context.Background()

	resp, err := client.GetChatHistory(ctx, "1@c.us", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Empty() {
		t.Error("[] should be empty")
	}
	if calls.at(0).body["count"] != float64(10) {
		t.Errorf("count = %v", calls.at(0).body["count"])
	}

	if _, err := client.LastIncomingMessages(ctx, 30); err != nil {
		t.Fatal(err)
	}
	if got := calls.at(1); got.path != "/waInstance1101/lastIncomingMessages/tok" || got.query != "minutes=30" {
		t.Errorf("incoming request = %s?%s", got.path, got.query)
	}

	if _, err := client.LastOutgoingMessages(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if got := calls.at(2); got.path != "/waInstance1101/lastOutgoingMessages/tok" || got.query != "minutes=5" {
		t.Errorf("outgoing request = %s?%s", got.path, got.query)
	}
}

func TestNonSuccessIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"forbidden"}`)
	})

	resp, err := client.GetContacts(context.Background())
	if err != nil {
		t.Fatalf("non-2xx must not be a transport error: %v", err)
	}
	if resp.OK() || resp.Code != http.StatusForbidden || resp.String() != `{"message":"forbidden"}` {
		t.Errorf("response = %d %s", resp.Code, resp.String())
	}
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient(Options{APIURL: "http://127.0.0.1:1", InstanceID: "1", APIToken: "t", Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.GetSettings(context.Background()); err == nil {
		t.Error("expected transport error")
	}
}

func TestCheckWhatsappSendsNumber(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"existsWhatsapp":true}`)
	})

	if _, err := client.CheckWhatsapp(context.Background(), "31612345678"); err != nil {
		t.Fatal(err)
	}
	if calls.at(0).body["phoneNumber"] != float64(31612345678) {
		t.Errorf("phoneNumber = %v", calls.at(0).body["phoneNumber"])
	}
	if _, err := client.CheckWhatsapp(context.Background(), "abc"); err == nil {
		t.Error("expected error for non-numeric phone")
	}
}

func TestGetMessageOmitsEmptyChat(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	if _, err := client.GetMessage(context.Background(), "", "ID1"); err != nil {
		t.Fatal(err)
	}
	body := calls.at(0).body
	if _, ok := body["chatId"]; ok || body["idMessage"] != "ID1" {
		t.Errorf("body = %v", body)
	}
}

func TestSetProfilePictureUploadsFile(t *testing.T) {
	var gotName, gotType string
	var gotData []byte
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)
		io.WriteString(w, `{"setProfilePicture":true}`)
	})

	path := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := client.SetProfilePicture(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.OK() {
		t.Fatalf("upload rejected: %s", resp.String())
	}
	if calls.at(0).path != "/waInstance1101/setProfilePicture/tok" {
		t.Errorf("path = %s", calls.at(0).path)
	}
	if gotName != "me.png" || gotType != "image/png" || string(gotData) != "png-bytes" {
		t.Errorf("upload = %q %q %q", gotName, gotType, gotData)
	}
}
