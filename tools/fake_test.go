package tools

import (
	"context"
	"sync"

	"whatsapp-greenapi-mcp/whatsapp"
)

// fakeGateway answers every method from a table keyed by Green API method
// name. Unset methods reply 200 with an empty object.
type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]*whatsapp.Response
	err       error
	calls     map[string]int
	args      map[string][]interface{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		responses: map[string]*whatsapp.Response{},
		calls:     map[string]int{},
		args:      map[string][]interface{}{},
	}
}

func (f *fakeGateway) set(method string, code int, data string) *fakeGateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = &whatsapp.Response{Code: code, Data: []byte(data)}
	return f
}

func (f *fakeGateway) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeGateway) lastArgs(method string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.args[method]
}

func (f *fakeGateway) call(method string, args ...interface{}) (*whatsapp.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	f.args[method] = args
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.responses[method]; ok {
		return resp, nil
	}
	return &whatsapp.Response{Code: 200, Data: []byte("{}")}, nil
}

func (f *fakeGateway) GetStateInstance(ctx context.Context) (*whatsapp.Response, error) {
	return f.call("getStateInstance")
}

func (f *fakeGateway) GetStatusInstance(ctx context.Context) (*whatsapp.Response, error) {
	return f.call("getStatusInstance")
}

func (f *fakeGateway) GetWaSettings(ctx context.Context) (*whatsapp.Response, error) {
	return f.call("getWaSettings")
}

func (f *fakeGateway) GetSettings(ctx context.Context) (*whatsapp.Response, error) {
	return f.call("getSettings")
}

func (f *fakeGateway) GetContacts(ctx context.Context) (*whatsapp.Response, error) {
	return f.call("getContacts")
}

func (f *fakeGateway) GetContactInfo(ctx context.Context, chatID string) (*whatsapp.Response, error) {
	return f.call("getContactInfo", chatID)
}

func (f *fakeGateway) CheckWhatsapp(ctx context.Context, phone string) (*whatsapp.Response, error) {
	return f.call("checkWhatsapp", phone)
}

func (f *fakeGateway) SendMessage(ctx context.Context, chatID, message string) (*whatsapp.Response, error) {
	return f.call("sendMessage", chatID, message)
}

func (f *fakeGateway) GetChatHistory(ctx context.Context, chatID string, count int) (*whatsapp.Response, error) {
	return f.call("getChatHistory", chatID, count)
}

func (f *fakeGateway) GetMessage(ctx context.Context, chatID, idMessage string) (*whatsapp.Response, error) {
	return f.call("getMessage", chatID, idMessage)
}

func (f *fakeGateway) LastIncomingMessages(ctx context.Context, minutes int) (*whatsapp.Response, error) {
	return f.call("lastIncomingMessages", minutes)
}

func (f *fakeGateway) LastOutgoingMessages(ctx context.Context, minutes int) (*whatsapp.Response, error) {
	return f.call("lastOutgoingMessages", minutes)
}

func (f *fakeGateway) ReadChat(ctx context.Context, chatID string) (*whatsapp.Response, error) {
	return f.call("readChat", chatID)
}

func (f *fakeGateway) CreateGroup(ctx context.Context, name string, chatIDs []string) (*whatsapp.Response, error) {
	return f.call("createGroup", name, chatIDs)
}

func (f *fakeGateway) GetGroupData(ctx context.Context, groupID string) (*whatsapp.Response, error) {
	return f.call("getGroupData", groupID)
}

func (f *fakeGateway) SetProfilePicture(ctx context.Context, imagePath string) (*whatsapp.Response, error) {
	return f.call("setProfilePicture", imagePath)
}

var _ Gateway = (*fakeGateway)(nil)
