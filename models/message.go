package models

import (
	"encoding/json"
	"strings"
)

// Message directions
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Message is a journal entry as returned by getChatHistory, getMessage,
// lastIncomingMessages and lastOutgoingMessages. Body holds the payload of
// the typeMessage tag.
type Message struct {
	Type              string
	IDMessage         string
	Timestamp         int64
	TypeMessage       string
	ChatID            string
	SenderID          string
	SenderName        string
	SenderContactName string
	StatusMessage     string
	SendByAPI         bool
	IsForwarded       bool
	// ForwardingScore is nil when the gateway omits it
	ForwardingScore *int
	IsDeleted       bool
	IsEdited        bool
	Body            MessageBody
}

// IsOutgoing reports whether the message was sent by this account
func (m *Message) IsOutgoing() bool {
	return m.Type == DirectionOutgoing
}

// MessageBody is the closed set of payload variants. Only types in this
// package implement it.
type MessageBody interface {
	messageBody()
}

// TextBody is a plain textMessage
type TextBody struct {
	Text string
}

// ExtendedTextBody is an extendedTextMessage, usually a link preview
type ExtendedTextBody struct {
	Text        string
	Title       string
	Description string
}

// MediaBody covers image, video, document, audio and sticker messages
type MediaBody struct {
	Kind        string
	Caption     string
	DownloadURL string
	FileName    string
	MimeType    string
}

// LocationBody is a locationMessage
type LocationBody struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// ContactBody is a shared contact card
type ContactBody struct {
	DisplayName string
	VCard       string
}

// PollBody is a newly created poll
type PollBody struct {
	Question        string
	Options         []string
	MultipleAnswers bool
}

// PollVote is the tally of one poll option
type PollVote struct {
	Option string
	Voters []string
}

// PollUpdateBody is a vote change on an existing poll
type PollUpdateBody struct {
	Question string
	Votes    []PollVote
}

// QuotedBody is a reply quoting an earlier message
type QuotedBody struct {
	Text       string
	QuotedType string
	QuotedID   string
}

// UnknownBody is any typeMessage this package does not model
type UnknownBody struct {
	TypeMessage string
}

func (TextBody) messageBody()         {}
func (ExtendedTextBody) messageBody() {}
func (MediaBody) messageBody()        {}
func (LocationBody) messageBody()     {}
func (ContactBody) messageBody()      {}
func (PollBody) messageBody()         {}
func (PollUpdateBody) messageBody()   {}
func (QuotedBody) messageBody()       {}
func (UnknownBody) messageBody()      {}

type wireExtendedText struct {
	Text            string `json:"text"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	IsForwarded     bool   `json:"isForwarded"`
	ForwardingScore *int   `json:"forwardingScore"`
}

type wirePoll struct {
	Name    string `json:"name"`
	Options []struct {
		OptionName string `json:"optionName"`
	} `json:"options"`
	Votes []struct {
		OptionName   string   `json:"optionName"`
		OptionVoters []string `json:"optionVoters"`
	} `json:"votes"`
	MultipleAnswers bool `json:"multipleAnswers"`
}

type wireMessage struct {
	Type              string `json:"type"`
	IDMessage         string `json:"idMessage"`
	Timestamp         int64  `json:"timestamp"`
	TypeMessage       string `json:"typeMessage"`
	ChatID            string `json:"chatId"`
	SenderID          string `json:"senderId"`
	SenderName        string `json:"senderName"`
	SenderContactName string `json:"senderContactName"`
	StatusMessage     string `json:"statusMessage"`
	SendByAPI         bool   `json:"sendByApi"`
	IsForwarded       bool   `json:"isForwarded"`
	ForwardingScore   *int   `json:"forwardingScore"`
	IsDeleted         bool   `json:"isDeleted"`
	IsEdited          bool   `json:"isEdited"`

	TextMessage     string `json:"textMessage"`
	TextMessageData struct {
		TextMessage string `json:"textMessage"`
	} `json:"textMessageData"`
	ExtendedTextMessage wireExtendedText `json:"extendedTextMessage"`

	Caption     string `json:"caption"`
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`

	Location struct {
		NameLocation string   `json:"nameLocation"`
		Address      string   `json:"address"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
	} `json:"location"`

	Contact struct {
		DisplayName string `json:"displayName"`
		VCard       string `json:"vcard"`
	} `json:"contact"`

	PollMessageData wirePoll `json:"pollMessageData"`

	QuotedMessage struct {
		StanzaID    string `json:"stanzaId"`
		TypeMessage string `json:"typeMessage"`
	} `json:"quotedMessage"`
}

// UnmarshalJSON decodes a journal entry and selects its body variant
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Message{
		Type:              w.Type,
		IDMessage:         w.IDMessage,
		Timestamp:         w.Timestamp,
		TypeMessage:       w.TypeMessage,
		ChatID:            w.ChatID,
		SenderID:          w.SenderID,
		SenderName:        w.SenderName,
		SenderContactName: w.SenderContactName,
		StatusMessage:     w.StatusMessage,
		SendByAPI:         w.SendByAPI,
		IsForwarded:       w.IsForwarded || w.ExtendedTextMessage.IsForwarded,
		ForwardingScore:   w.ForwardingScore,
		IsDeleted:         w.IsDeleted,
		IsEdited:          w.IsEdited,
	}
	if m.ForwardingScore == nil {
		m.ForwardingScore = w.ExtendedTextMessage.ForwardingScore
	}
	m.Body = w.body()
	return nil
}

func (w *wireMessage) body() MessageBody {
	switch w.TypeMessage {
	case "textMessage":
		text := w.TextMessage
		if text == "" {
			text = w.TextMessageData.TextMessage
		}
		return TextBody{Text: text}
	case "extendedTextMessage":
		text := w.ExtendedTextMessage.Text
		if text == "" {
			text = w.TextMessage
		}
		return ExtendedTextBody{
			Text:        text,
			Title:       w.ExtendedTextMessage.Title,
			Description: w.ExtendedTextMessage.Description,
		}
	case "imageMessage", "videoMessage", "documentMessage", "audioMessage", "stickerMessage":
		return MediaBody{
			Kind:        strings.TrimSuffix(w.TypeMessage, "Message"),
			Caption:     w.Caption,
			DownloadURL: w.DownloadURL,
			FileName:    w.FileName,
			MimeType:    w.MimeType,
		}
	case "locationMessage":
		return LocationBody{
			Name:      w.Location.NameLocation,
			Address:   w.Location.Address,
			Latitude:  w.Location.Latitude,
			Longitude: w.Location.Longitude,
		}
	case "contactMessage":
		return ContactBody{DisplayName: w.Contact.DisplayName, VCard: w.Contact.VCard}
	case "pollMessage":
		poll := PollBody{Question: w.PollMessageData.Name, MultipleAnswers: w.PollMessageData.MultipleAnswers}
		for _, opt := range w.PollMessageData.Options {
			poll.Options = append(poll.Options, opt.OptionName)
		}
		return poll
	case "pollUpdateMessage":
		update := PollUpdateBody{Question: w.PollMessageData.Name}
		for _, v := range w.PollMessageData.Votes {
			update.Votes = append(update.Votes, PollVote{Option: v.OptionName, Voters: v.OptionVoters})
		}
		return update
	case "quotedMessage":
		return QuotedBody{
			Text:       w.ExtendedTextMessage.Text,
			QuotedType: w.QuotedMessage.TypeMessage,
			QuotedID:   w.QuotedMessage.StanzaID,
		}
	default:
		return UnknownBody{TypeMessage: w.TypeMessage}
	}
}

// PlainText returns the written text of a message, or "" for payloads
// without one.
func (m *Message) PlainText() string {
	switch b := m.Body.(type) {
	case TextBody:
		return b.Text
	case ExtendedTextBody:
		return b.Text
	case QuotedBody:
		return b.Text
	case MediaBody:
		return b.Caption
	default:
		return ""
	}
}
