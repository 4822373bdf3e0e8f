package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"whatsapp-greenapi-mcp/models"
	"whatsapp-greenapi-mcp/utils"
	"whatsapp-greenapi-mcp/whatsapp"
)

const (
	defaultViewLimit = 5
	maxViewLimit     = 100
	defaultMinutes   = 1440

	noContactsText = "No contacts found. If this persists, try rescanning the QR code or contact support."
)

// Handler runs one tool. It always returns text; failures are rendered,
// never returned.
type Handler func(ctx context.Context, args map[string]interface{}) string

// Toolbox holds the adapters for every tool
type Toolbox struct {
	gateway  Gateway
	resolver *Resolver
	logger   *utils.Logger
	handlers map[string]Handler
}

// NewToolbox creates the adapters around one shared gateway client
func NewToolbox(gateway Gateway, logger *utils.Logger) *Toolbox {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	t := &Toolbox{
		gateway:  gateway,
		resolver: NewResolver(gateway),
		logger:   logger,
	}
	t.handlers = map[string]Handler{
		"open_session":               t.OpenSession,
		"send_message":               t.SendMessage,
		"get_chats":                  t.GetChats,
		"create_group":               t.CreateGroup,
		"get_group_participants":     t.GetGroupParticipants,
		"view_messages":              t.ViewMessages,
		"get_message":                t.GetMessage,
		"get_last_incoming_messages": t.GetLastIncomingMessages,
		"get_last_outgoing_messages": t.GetLastOutgoingMessages,
		"mark_chat_unread":           t.MarkChatUnread,
		"check_whatsapp_number":      t.CheckWhatsappNumber,
		"get_contact_info":           t.GetContactInfo,
		"get_my_details":             t.GetMyDetails,
		"update_profile_picture":     t.UpdateProfilePicture,
		"get_account_status":         t.GetAccountStatus,
	}
	return t
}

// Has reports whether a tool is registered under name
func (t *Toolbox) Has(name string) bool {
	_, ok := t.handlers[name]
	return ok
}

// Execute runs the named tool. ok is false for an unknown tool. A panic
// inside an adapter is recovered and rendered as an error text.
func (t *Toolbox) Execute(ctx context.Context, name string, args map[string]interface{}) (result string, ok bool) {
	handler, ok := t.handlers[name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool '%s'", name), false
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	log := t.logger.WithFields(map[string]interface{}{
		"request_id": uuid.NewString(),
		"tool":       name,
	})
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error: %v", r)
			log.Error("tool panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
		fields := map[string]interface{}{"duration_ms": time.Since(start).Milliseconds()}
		if IsFailure(result) {
			fields["result"] = utils.TruncateString(result, 200)
			log.Warn("tool failed", fields)
			return
		}
		log.Info("tool completed", fields)
	}()

	return handler(ctx, args), true
}

// IsFailure reports whether a tool text reports an error or a gateway failure
func IsFailure(text string) bool {
	return strings.HasPrefix(text, "Error:") || strings.HasPrefix(text, "Failed")
}

func errorText(err error) string {
	return "Error: " + err.Error()
}

func failedText(resp *whatsapp.Response) string {
	return "Failed: " + resp.String()
}

// OpenSession checks whether the instance is authorized
func (t *Toolbox) OpenSession(ctx context.Context, _ map[string]interface{}) string {
	resp, err := t.gateway.GetStateInstance(ctx)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	var state models.StateInstance
	if err := resp.Decode(&state); err != nil {
		return errorText(err)
	}
	if state.StateInstance != "" && state.StateInstance != "authorized" {
		return fmt.Sprintf("WhatsApp session is not active (state: %s).", state.StateInstance)
	}
	return "WhatsApp session is active."
}

// SendMessage sends a text to a resolved contact
func (t *Toolbox) SendMessage(ctx context.Context, args map[string]interface{}) string {
	contact, err := stringArg(args, "contact")
	if err != nil {
		return errorText(err)
	}
	message, err := stringArg(args, "message")
	if err != nil {
		return errorText(err)
	}
	chatID, err := t.resolver.Resolve(ctx, contact)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.SendMessage(ctx, chatID, message)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	var sent models.SendMessageResult
	if err := resp.Decode(&sent); err == nil {
		t.logger.Debug("message accepted", map[string]interface{}{"chat_id": chatID, "id_message": sent.IDMessage})
	}
	return fmt.Sprintf("Message sent to %s.", contact)
}

// GetChats lists contacts, optionally only groups or only individuals
func (t *Toolbox) GetChats(ctx context.Context, args map[string]interface{}) string {
	group, err := optionalBoolArg(args, "group")
	if err != nil {
		return errorText(err)
	}
	count := -1
	if _, set := args["count"]; set {
		if count, err = intArg(args, "count", 0); err != nil {
			return errorText(err)
		}
		if count < 0 {
			return "Error: count must not be negative"
		}
	}

	resp, err := t.gateway.GetContacts(ctx)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	var contacts []models.Contact
	if err := resp.Decode(&contacts); err != nil {
		return errorText(err)
	}

	if group != nil {
		filtered := contacts[:0:0]
		for _, c := range contacts {
			if c.IsGroup() == *group {
				filtered = append(filtered, c)
			}
		}
		contacts = filtered
	}
	if count >= 0 && count < len(contacts) {
		contacts = contacts[:count]
	}
	if len(contacts) == 0 {
		return noContactsText
	}

	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		name := orDefault(c.Name, orDefault(c.ContactName, "No name"))
		lines = append(lines, fmt.Sprintf("%s (%s) [%s]", name, c.ID, c.Type))
	}
	return strings.Join(lines, "\n")
}

// CreateGroup creates a group from resolved participants
func (t *Toolbox) CreateGroup(ctx context.Context, args map[string]interface{}) string {
	name, err := stringArg(args, "group_name")
	if err != nil {
		return errorText(err)
	}
	participants, err := stringSliceArg(args, "participants")
	if err != nil {
		return errorText(err)
	}

	chatIDs := make([]string, 0, len(participants))
	for _, p := range participants {
		chatID, err := t.resolver.Resolve(ctx, p)
		if err != nil {
			return errorText(err)
		}
		chatIDs = append(chatIDs, chatID)
	}

	resp, err := t.gateway.CreateGroup(ctx, name, chatIDs)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	var result models.CreateGroupResult
	if err := resp.Decode(&result); err != nil {
		return errorText(err)
	}
	if !result.Created {
		return failedText(resp)
	}
	return fmt.Sprintf("Group '%s' created!\nGroup ID: %s\nInvite Link: %s",
		name, result.ChatID, orDefault(result.GroupInviteLink, "N/A"))
}

// GetGroupParticipants lists the member ids of a group
func (t *Toolbox) GetGroupParticipants(ctx context.Context, args map[string]interface{}) string {
	groupID, err := stringArg(args, "group_id")
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.GetGroupData(ctx, groupID)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	var group models.GroupData
	if err := resp.Decode(&group); err != nil {
		return errorText(err)
	}
	if len(group.Participants) == 0 {
		return "No participants found"
	}
	ids := make([]string, 0, len(group.Participants))
	for _, p := range group.Participants {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, "\n")
}

// ViewMessages renders the recent history of one chat, oldest first
func (t *Toolbox) ViewMessages(ctx context.Context, args map[string]interface{}) string {
	contact, err := stringArg(args, "contact")
	if err != nil {
		return errorText(err)
	}
	limit, err := intArg(args, "limit", defaultViewLimit)
	if err != nil {
		return errorText(err)
	}
	limit = clamp(limit, 1, maxViewLimit)

	chatID, err := t.resolver.Resolve(ctx, contact)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.GetChatHistory(ctx, chatID, limit)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() || resp.Empty() {
		t.logger.Error("chat history unavailable", map[string]interface{}{"chat_id": chatID, "status": resp.Code})
		return "Failed to get messages: " + resp.String()
	}
	var msgs []models.Message
	if err := resp.Decode(&msgs); err != nil {
		return errorText(err)
	}
	return orDefault(renderMessages(msgs, historyView), "No messages found")
}

// GetMessage returns the text of one message
func (t *Toolbox) GetMessage(ctx context.Context, args map[string]interface{}) string {
	messageID, err := stringArg(args, "message_id")
	if err != nil {
		return errorText(err)
	}
	chatID := ""
	if contact := optionalStringArg(args, "contact"); contact != "" {
		if chatID, err = t.resolver.Resolve(ctx, contact); err != nil {
			return errorText(err)
		}
	}

	resp, err := t.gateway.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return "Failed to retrieve message: " + resp.String()
	}
	var msg models.Message
	if err := resp.Decode(&msg); err != nil {
		return errorText(err)
	}
	return "Message: " + orDefault(msg.PlainText(), "No text")
}

func (t *Toolbox) minutesArg(args map[string]interface{}) (int, error) {
	minutes, err := intArg(args, "minutes", defaultMinutes)
	if err != nil {
		return 0, err
	}
	return max(1, minutes), nil
}

// GetLastIncomingMessages renders incoming messages across all chats
func (t *Toolbox) GetLastIncomingMessages(ctx context.Context, args map[string]interface{}) string {
	minutes, err := t.minutesArg(args)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.LastIncomingMessages(ctx, minutes)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() || resp.Empty() {
		t.logger.Error("incoming journal unavailable", map[string]interface{}{"status": resp.Code})
		return "Failed to get messages: " + resp.String()
	}
	var msgs []models.Message
	if err := resp.Decode(&msgs); err != nil {
		return errorText(err)
	}
	return orDefault(renderMessages(msgs, incomingView), "No messages found")
}

// GetLastOutgoingMessages renders outgoing messages with their delivery status
func (t *Toolbox) GetLastOutgoingMessages(ctx context.Context, args map[string]interface{}) string {
	minutes, err := t.minutesArg(args)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.LastOutgoingMessages(ctx, minutes)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		t.logger.Error("outgoing journal unavailable", map[string]interface{}{"status": resp.Code})
		return "Failed to get messages: " + resp.String()
	}
	if resp.Empty() {
		return "No outgoing messages found"
	}
	var msgs []models.Message
	if err := resp.Decode(&msgs); err != nil {
		return errorText(err)
	}
	return orDefault(renderMessages(msgs, outgoingView), "No outgoing messages found")
}

// MarkChatUnread issues readChat for the resolved chat. The gateway call
// marks the chat as read even though the tool name says unread.
func (t *Toolbox) MarkChatUnread(ctx context.Context, args map[string]interface{}) string {
	contact, err := stringArg(args, "contact")
	if err != nil {
		return errorText(err)
	}
	chatID, err := t.resolver.Resolve(ctx, contact)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.ReadChat(ctx, chatID)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	return "Chat marked as unread."
}

// CheckWhatsappNumber reports whether a phone number has WhatsApp
func (t *Toolbox) CheckWhatsappNumber(ctx context.Context, args map[string]interface{}) string {
	phone, err := stringArg(args, "phone")
	if err != nil {
		return errorText(err)
	}
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return "Error: phone must contain digits"
	}
	resp, err := t.gateway.CheckWhatsapp(ctx, digits)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return "Failed to check number: " + resp.String()
	}
	var result models.CheckWhatsappResult
	if err := resp.Decode(&result); err != nil {
		return errorText(err)
	}
	if result.ExistsWhatsapp {
		return "Phone number has WhatsApp"
	}
	return "Phone number doesn't have WhatsApp"
}

// GetContactInfo renders name, phone, status and avatar of a contact
func (t *Toolbox) GetContactInfo(ctx context.Context, args map[string]interface{}) string {
	contact, err := stringArg(args, "contact")
	if err != nil {
		return errorText(err)
	}
	chatID, err := t.resolver.Resolve(ctx, contact)
	if err != nil {
		return errorText(err)
	}
	resp, err := t.gateway.GetContactInfo(ctx, chatID)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return "Failed to get contact info: " + resp.String()
	}
	var info models.ContactInfo
	if err := resp.Decode(&info); err != nil {
		return errorText(err)
	}

	phone := info.Phone
	if phone == "" && utils.IsIndividualJID(chatID) {
		phone = utils.ExtractPhoneFromJID(chatID)
	}
	return fmt.Sprintf("Contact Info:\nName: %s\nPhone: %s\nStatus: %s\nAvatar: %s",
		orDefault(info.Name, orDefault(info.ContactName, "Unknown")),
		orDefault(phone, "Unknown"),
		orDefault(info.Status, "Unknown"),
		orDefault(info.Avatar, "No avatar"))
}

// facet is one of several independent reads joined before rendering
type facet struct {
	name  string
	fetch func(context.Context) (*whatsapp.Response, error)
	resp  *whatsapp.Response
}

// fetchFacets runs every fetch concurrently and waits for all of them.
// A transport error is returned; non-success statuses are left for the
// caller to name via failedFacets.
func fetchFacets(ctx context.Context, facets []*facet) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range facets {
		g.Go(func() error {
			resp, err := f.fetch(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			f.resp = resp
			return nil
		})
	}
	return g.Wait()
}

func failedFacets(facets []*facet) []string {
	var failed []string
	for _, f := range facets {
		if !f.resp.OK() {
			failed = append(failed, f.name)
		}
	}
	return failed
}

// GetMyDetails joins state, status, WA settings and account settings
func (t *Toolbox) GetMyDetails(ctx context.Context, _ map[string]interface{}) string {
	state := &facet{name: "state", fetch: t.gateway.GetStateInstance}
	status := &facet{name: "status", fetch: t.gateway.GetStatusInstance}
	wa := &facet{name: "WA settings", fetch: t.gateway.GetWaSettings}
	settings := &facet{name: "account settings", fetch: t.gateway.GetSettings}
	facets := []*facet{state, status, wa, settings}

	if err := fetchFacets(ctx, facets); err != nil {
		return errorText(err)
	}
	if failed := failedFacets(facets); len(failed) > 0 {
		return "Failed to get: " + strings.Join(failed, ", ")
	}

	var (
		stateData    models.StateInstance
		statusData   models.StatusInstance
		waData       models.WaSettings
		settingsData models.Settings
	)
	for _, d := range []struct {
		resp *whatsapp.Response
		into interface{}
	}{
		{state.resp, &stateData},
		{status.resp, &statusData},
		{wa.resp, &waData},
		{settings.resp, &settingsData},
	} {
		if err := d.resp.Decode(d.into); err != nil {
			return errorText(err)
		}
	}

	var b strings.Builder
	b.WriteString("WhatsApp Account Status:\n")
	fmt.Fprintf(&b, "Phone Number: %s\n", orDefault(waData.Phone, "Unknown"))
	fmt.Fprintf(&b, "State: %s\n", orDefault(stateData.StateInstance, "Unknown"))
	fmt.Fprintf(&b, "Connection: %s\n", orDefault(statusData.StatusInstance, "Unknown"))
	fmt.Fprintf(&b, "Avatar URL: %s\n", orDefault(waData.Avatar, "No avatar"))
	fmt.Fprintf(&b, "Device ID: %s\n\n", orDefault(waData.DeviceID, "Unknown"))
	b.WriteString("Account Settings:\n")
	fmt.Fprintf(&b, "Webhook URL: %s\n", orDefault(settingsData.WebhookURL, "Not set"))
	fmt.Fprintf(&b, "Message Delay: %dms\n", settingsData.DelaySendMessagesMilliseconds)
	fmt.Fprintf(&b, "Mark Messages Read: %s\n", orDefault(settingsData.MarkIncomingMessagesReaded, "no"))
	fmt.Fprintf(&b, "Keep Online: %s\n", orDefault(settingsData.KeepOnlineStatus, "no"))
	b.WriteString("Notifications:\n")
	fmt.Fprintf(&b, "- Incoming: %s\n", orDefault(settingsData.IncomingWebhook, "no"))
	fmt.Fprintf(&b, "- Outgoing: %s\n", orDefault(settingsData.OutgoingWebhook, "no"))
	fmt.Fprintf(&b, "- Calls: %s\n", orDefault(settingsData.IncomingCallWebhook, "no"))
	fmt.Fprintf(&b, "- Polls: %s\n", orDefault(settingsData.PollMessageWebhook, "no"))
	fmt.Fprintf(&b, "- Edits: %s\n", orDefault(settingsData.EditedMessageWebhook, "no"))
	fmt.Fprintf(&b, "- Deletions: %s", orDefault(settingsData.DeletedMessageWebhook, "no"))
	return b.String()
}

// UpdateProfilePicture uploads a local image as the account avatar
func (t *Toolbox) UpdateProfilePicture(ctx context.Context, args map[string]interface{}) string {
	imagePath, err := stringArg(args, "image_path")
	if err != nil {
		return errorText(err)
	}
	if !utils.FileExists(imagePath) {
		return "Error: Image file not found"
	}
	if !utils.IsImageFile(imagePath) {
		return "Error: file is not a supported image"
	}
	resp, err := t.gateway.SetProfilePicture(ctx, imagePath)
	if err != nil {
		return errorText(err)
	}
	if !resp.OK() {
		return failedText(resp)
	}
	return "Profile picture updated successfully"
}

// GetAccountStatus joins instance state and connection status
func (t *Toolbox) GetAccountStatus(ctx context.Context, _ map[string]interface{}) string {
	state := &facet{name: "state", fetch: t.gateway.GetStateInstance}
	status := &facet{name: "status", fetch: t.gateway.GetStatusInstance}

	if err := fetchFacets(ctx, []*facet{state, status}); err != nil {
		return errorText(err)
	}
	if len(failedFacets([]*facet{state, status})) > 0 {
		return "Failed to get account status"
	}

	var stateData models.StateInstance
	if err := state.resp.Decode(&stateData); err != nil {
		return errorText(err)
	}
	var statusData models.StatusInstance
	if err := status.resp.Decode(&statusData); err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Account Status:\nState: %s\nStatus: %s\nSubstatus: %s",
		orDefault(stateData.StateInstance, "Unknown"),
		orDefault(statusData.StatusInstance, "Unknown"),
		orDefault(statusData.SubStatusInstance, "Unknown"))
}
