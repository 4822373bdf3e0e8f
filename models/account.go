package models

// Contact is an entry of getContacts. Type is "user" or "group".
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Type        string `json:"type"`
}

// IsGroup reports whether the contact is a group chat
func (c Contact) IsGroup() bool {
	return c.Type == "group"
}

// ContactInfo is the getContactInfo payload
type ContactInfo struct {
	ChatID      string `json:"chatId"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	Avatar      string `json:"avatar"`
	Email       string `json:"email"`
	IsBusiness  bool   `json:"isBusiness"`
}

// StateInstance is the getStateInstance payload, e.g. "authorized"
type StateInstance struct {
	StateInstance string `json:"stateInstance"`
}

// StatusInstance is the getStatusInstance payload
type StatusInstance struct {
	StatusInstance    string `json:"statusInstance"`
	SubStatusInstance string `json:"subStatusInstance"`
}

// WaSettings is the getWaSettings payload
type WaSettings struct {
	Avatar        string `json:"avatar"`
	Phone         string `json:"phone"`
	StateInstance string `json:"stateInstance"`
	DeviceID      string `json:"deviceId"`
}

// Settings is the getSettings payload. Toggles are "yes" or "no".
type Settings struct {
	Wid                           string `json:"wid"`
	WebhookURL                    string `json:"webhookUrl"`
	DelaySendMessagesMilliseconds int    `json:"delaySendMessagesMilliseconds"`
	MarkIncomingMessagesReaded    string `json:"markIncomingMessagesReaded"`
	KeepOnlineStatus              string `json:"keepOnlineStatus"`
	IncomingWebhook               string `json:"incomingWebhook"`
	OutgoingWebhook               string `json:"outgoingWebhook"`
	IncomingCallWebhook           string `json:"incomingCallWebhook"`
	PollMessageWebhook            string `json:"pollMessageWebhook"`
	EditedMessageWebhook          string `json:"editedMessageWebhook"`
	DeletedMessageWebhook         string `json:"deletedMessageWebhook"`
}

// CheckWhatsappResult is the checkWhatsapp payload
type CheckWhatsappResult struct {
	ExistsWhatsapp bool `json:"existsWhatsapp"`
}

// SendMessageResult is the sendMessage payload
type SendMessageResult struct {
	IDMessage string `json:"idMessage"`
}

// CreateGroupResult is the createGroup payload
type CreateGroupResult struct {
	Created         bool   `json:"created"`
	ChatID          string `json:"chatId"`
	GroupInviteLink string `json:"groupInviteLink"`
}

// GroupParticipant is a member of a group
type GroupParticipant struct {
	ID           string `json:"id"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

// GroupData is the getGroupData payload
type GroupData struct {
	GroupID         string             `json:"groupId"`
	Owner           string             `json:"owner"`
	Subject         string             `json:"subject"`
	GroupInviteLink string             `json:"groupInviteLink"`
	Participants    []GroupParticipant `json:"participants"`
}
