package tools

import (
	"context"

	"whatsapp-greenapi-mcp/whatsapp"
)

// Gateway is the subset of the Green API client the adapters call.
// *whatsapp.Client implements it.
type Gateway interface {
	GetStateInstance(ctx context.Context) (*whatsapp.Response, error)
	GetStatusInstance(ctx context.Context) (*whatsapp.Response, error)
	GetWaSettings(ctx context.Context) (*whatsapp.Response, error)
	GetSettings(ctx context.Context) (*whatsapp.Response, error)
	GetContacts(ctx context.Context) (*whatsapp.Response, error)
	GetContactInfo(ctx context.Context, chatID string) (*whatsapp.Response, error)
	CheckWhatsapp(ctx context.Context, phone string) (*whatsapp.Response, error)
	SendMessage(ctx context.Context, chatID, message string) (*whatsapp.Response, error)
	GetChatHistory(ctx context.Context, chatID string, count int) (*whatsapp.Response, error)
	GetMessage(ctx context.Context, chatID, idMessage string) (*whatsapp.Response, error)
	LastIncomingMessages(ctx context.Context, minutes int) (*whatsapp.Response, error)
	LastOutgoingMessages(ctx context.Context, minutes int) (*whatsapp.Response, error)
	ReadChat(ctx context.Context, chatID string) (*whatsapp.Response, error)
	CreateGroup(ctx context.Context, name string, chatIDs []string) (*whatsapp.Response, error)
	GetGroupData(ctx context.Context, groupID string) (*whatsapp.Response, error)
	SetProfilePicture(ctx context.Context, imagePath string) (*whatsapp.Response, error)
}

var _ Gateway = (*whatsapp.Client)(nil)
