package tools

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"whatsapp-greenapi-mcp/models"
	"whatsapp-greenapi-mcp/utils"
)

const messageSeparator = "\n\n"

// headFunc renders the part of a line that precedes the body
type headFunc func(m *models.Message) string

func historyHead(m *models.Message) string {
	sender := m.SenderName
	status := ""
	if m.IsOutgoing() {
		if sender == "" {
			sender = "You"
		}
		status = fmt.Sprintf(" [%s]", orDefault(m.StatusMessage, "unknown"))
	} else if sender == "" {
		sender = "Unknown"
	}
	return fmt.Sprintf("[%s] %s%s", utils.FormatUnix(m.Timestamp), sender, status)
}

func incomingHead(m *models.Message) string {
	sender := orDefault(m.SenderName, orDefault(m.SenderContactName, "Unknown"))
	return fmt.Sprintf("[%s] %s (%s)", utils.FormatUnix(m.Timestamp), sender, orDefault(m.ChatID, "Unknown Chat"))
}

func outgoingHead(m *models.Message) string {
	return fmt.Sprintf("[%s] ID: %s To %s [%s]",
		utils.FormatUnix(m.Timestamp),
		orDefault(m.IDMessage, "Unknown"),
		orDefault(m.ChatID, "Unknown Chat"),
		orDefault(m.StatusMessage, "unknown"))
}

// view is one listing style: its line head and whether shared locations
// carry coordinates
type view struct {
	head   headFunc
	coords bool
}

var (
	historyView  = view{head: historyHead, coords: true}
	incomingView = view{head: incomingHead}
	outgoingView = view{head: outgoingHead, coords: true}
)

// renderMessages renders msgs oldest first. The gateway returns newest
// first, so the order is reversed on a copy.
func renderMessages(msgs []models.Message, v view) string {
	ordered := slices.Clone(msgs)
	slices.Reverse(ordered)

	lines := make([]string, 0, len(ordered))
	for i := range ordered {
		lines = append(lines, v.render(&ordered[i]))
	}
	return strings.Join(lines, messageSeparator)
}

func (v view) render(m *models.Message) string {
	// poll updates are chat events, not attributed to a sender
	if b, ok := m.Body.(models.PollUpdateBody); ok {
		return fmt.Sprintf("[%s] %s", utils.FormatUnix(m.Timestamp), pollUpdate(b)) + annotations(m)
	}
	return v.head(m) + renderBody(m.Body, m.TypeMessage, v.coords) + annotations(m)
}

func pollUpdate(b models.PollUpdateBody) string {
	votes := make([]string, 0, len(b.Votes))
	for _, v := range b.Votes {
		votes = append(votes, fmt.Sprintf("%s: %d", v.Option, len(v.Voters)))
	}
	return fmt.Sprintf("Poll update for '%s' - Votes: %s", orDefault(b.Question, "Unknown poll"), strings.Join(votes, ", "))
}

func renderBody(body models.MessageBody, typeMessage string, coords bool) string {
	switch b := body.(type) {
	case models.TextBody:
		return ": " + orDefault(b.Text, "No text")
	case models.ExtendedTextBody:
		out := ": " + orDefault(b.Text, "No text")
		if b.Title != "" || b.Description != "" {
			out += fmt.Sprintf("\nTitle: %s\nDescription: %s", b.Title, b.Description)
		}
		return out
	case models.MediaBody:
		return fmt.Sprintf(" sent %s: %s (URL: %s)", b.Kind, b.Caption, orDefault(b.DownloadURL, "No URL"))
	case models.LocationBody:
		out := " shared location: " + orDefault(b.Name, "Unknown location")
		if coords {
			out += fmt.Sprintf(" (%s, %s)", coordinate(b.Latitude), coordinate(b.Longitude))
		}
		return out
	case models.ContactBody:
		return " shared contact: " + orDefault(b.DisplayName, "Unknown contact")
	case models.PollBody:
		return fmt.Sprintf(" created poll: %s [Options: %s]", orDefault(b.Question, "Unknown poll"), strings.Join(b.Options, ", "))
	case models.PollUpdateBody:
		return " " + pollUpdate(b)
	case models.QuotedBody:
		return fmt.Sprintf(" replied to %s: %s", orDefault(b.QuotedType, "unknown"), orDefault(b.Text, "No text"))
	case models.UnknownBody:
		return " sent " + orDefault(b.TypeMessage, "Unknown")
	default:
		return " sent " + orDefault(typeMessage, "Unknown")
	}
}

// annotations appends the optional flags in fixed order
func annotations(m *models.Message) string {
	var b strings.Builder
	if m.IsForwarded {
		score := 1
		if m.ForwardingScore != nil {
			score = *m.ForwardingScore
		}
		fmt.Fprintf(&b, " (forwarded %dx)", score)
	}
	if m.IsDeleted {
		b.WriteString(" (deleted)")
	}
	if m.IsEdited {
		b.WriteString(" (edited)")
	}
	if m.SendByAPI {
		b.WriteString(" (sent via API)")
	}
	return b.String()
}

func coordinate(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
