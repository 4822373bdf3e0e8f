package tools

import (
	"testing"

	"whatsapp-greenapi-mcp/models"
)

func TestRenderBody(t *testing.T) {
	lat := 52.37
	tests := []struct {
		name string
		body models.MessageBody
		want string
	}{
		{"text", models.TextBody{Text: "hi"}, ": hi"},
		{"empty text", models.TextBody{}, ": No text"},
		{"extended", models.ExtendedTextBody{Text: "https://x.io", Title: "X"}, ": https://x.io\nTitle: X\nDescription: "},
		{"extended plain", models.ExtendedTextBody{Text: "plain"}, ": plain"},
		{"media", models.MediaBody{Kind: "image", Caption: "cat", DownloadURL: "https://d/1"}, " sent image: cat (URL: https://d/1)"},
		{"media no url", models.MediaBody{Kind: "audio"}, " sent audio:  (URL: No URL)"},
		{"location", models.LocationBody{Name: "Dam", Latitude: &lat}, " shared location: Dam (52.37, ?)"},
		{"contact", models.ContactBody{}, " shared contact: Unknown contact"},
		{"poll", models.PollBody{Question: "Lunch?", Options: []string{"Yes", "No"}}, " created poll: Lunch? [Options: Yes, No]"},
		{"poll update", models.PollUpdateBody{Question: "Lunch?", Votes: []models.PollVote{{Option: "Yes", Voters: []string{"a", "b"}}, {Option: "No"}}}, " Poll update for 'Lunch?' - Votes: Yes: 2, No: 0"},
		{"quoted", models.QuotedBody{Text: "ok", QuotedType: "imageMessage"}, " replied to imageMessage: ok"},
		{"unknown", models.UnknownBody{TypeMessage: "reactionMessage"}, " sent reactionMessage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBody(tt.body, "", true); got != tt.want {
				t.Errorf("renderBody = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnnotationsOrder(t *testing.T) {
	four, zero := 4, 0
	m := &models.Message{IsForwarded: true, ForwardingScore: &four, IsDeleted: true, IsEdited: true, SendByAPI: true}
	want := " (forwarded 4x) (deleted) (edited) (sent via API)"
	if got := annotations(m); got != want {
		t.Errorf("annotations = %q, want %q", got, want)
	}

	m = &models.Message{IsForwarded: true, IsEdited: true}
	if got := annotations(m); got != " (forwarded 1x) (edited)" {
		t.Errorf("annotations = %q", got)
	}

	m = &models.Message{IsForwarded: true, ForwardingScore: &zero}
	if got := annotations(m); got != " (forwarded 0x)" {
		t.Errorf("annotations with explicit zero score = %q", got)
	}
}

func TestHeads(t *testing.T) {
	out := &models.Message{Type: models.DirectionOutgoing, Timestamp: 1700000000, StatusMessage: "read", IDMessage: "ID1", ChatID: "1@c.us"}
	in := &models.Message{Type: models.DirectionIncoming, SenderContactName: "Bob", ChatID: "2@c.us"}

	if got := historyHead(out); got != "[2023-11-14 22:13:20] You [read]" {
		t.Errorf("historyHead(out) = %q", got)
	}
	if got := historyHead(in); got != "[Unknown] Unknown" {
		t.Errorf("historyHead(in) = %q", got)
	}
	if got := incomingHead(in); got != "[Unknown] Bob (2@c.us)" {
		t.Errorf("incomingHead = %q", got)
	}
	if got := outgoingHead(out); got != "[2023-11-14 22:13:20] ID: ID1 To 1@c.us [read]" {
		t.Errorf("outgoingHead = %q", got)
	}
}

func TestRenderMessagesReversesOrder(t *testing.T) {
	msgs := []models.Message{
		{Timestamp: 3, Body: models.TextBody{Text: "third"}},
		{Timestamp: 2, Body: models.TextBody{Text: "second"}},
		{Timestamp: 1, Body: models.TextBody{Text: "first"}},
	}
	bare := view{head: func(m *models.Message) string { return "" }}

	if got := renderMessages(msgs, bare); got != ": first\n\n: second\n\n: third" {
		t.Errorf("renderMessages = %q", got)
	}
	if msgs[0].Timestamp != 3 {
		t.Error("input slice was mutated")
	}
}

func TestViewsRenderPollUpdatesAndLocations(t *testing.T) {
	lat, lng := 52.37, 4.89
	poll := models.Message{
		Type:        models.DirectionIncoming,
		Timestamp:   1700000000,
		SenderName:  "Bob",
		ChatID:      "2@c.us",
		TypeMessage: "pollUpdateMessage",
		Body:        models.PollUpdateBody{Question: "Lunch?", Votes: []models.PollVote{{Option: "Yes", Voters: []string{"a"}}}},
	}
	location := models.Message{
		Type:          models.DirectionOutgoing,
		Timestamp:     1700000000,
		IDMessage:     "ID1",
		ChatID:        "2@c.us",
		StatusMessage: "read",
		SenderName:    "Bob",
		TypeMessage:   "locationMessage",
		Body:          models.LocationBody{Name: "Dam", Latitude: &lat, Longitude: &lng},
	}

	tests := []struct {
		name string
		msg  models.Message
		v    view
		want string
	}{
		{"history poll update", poll, historyView, "[2023-11-14 22:13:20] Poll update for 'Lunch?' - Votes: Yes: 1"},
		{"incoming poll update", poll, incomingView, "[2023-11-14 22:13:20] Poll update for 'Lunch?' - Votes: Yes: 1"},
		{"history location", location, historyView, "[2023-11-14 22:13:20] Bob [read] shared location: Dam (52.37, 4.89)"},
		{"incoming location", location, incomingView, "[2023-11-14 22:13:20] Bob (2@c.us) shared location: Dam"},
		{"outgoing location", location, outgoingView, "[2023-11-14 22:13:20] ID: ID1 To 2@c.us [read] shared location: Dam (52.37, 4.89)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderMessages([]models.Message{tt.msg}, tt.v); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}
