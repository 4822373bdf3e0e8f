package tools

// Tool represents an MCP tool
type Tool struct {
	Name        string                 `json:"name" example:"send_message"`
	Description string                 `json:"description" example:"Send a message to a contact"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolsResponse represents the tools list response
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// Properties returns the schema properties, never nil
func (t Tool) Properties() map[string]interface{} {
	if p, ok := t.InputSchema["properties"].(map[string]interface{}); ok {
		return p
	}
	return map[string]interface{}{}
}

// Required returns the required argument names, never nil
func (t Tool) Required() []string {
	if r, ok := t.InputSchema["required"].([]string); ok {
		return r
	}
	return []string{}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func param(kind, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        kind,
		"description": description,
	}
}

const contactDescription = "Contact name, phone number in digits, or chat id ending in @c.us or @g.us"

// GetTools returns the list of available MCP tools
func GetTools() []Tool {
	return []Tool{
		{
			Name:        "open_session",
			Description: "Check if the WhatsApp session is active",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "send_message",
			Description: "Send a message to a contact",
			InputSchema: objectSchema(map[string]interface{}{
				"contact": param("string", contactDescription),
				"message": param("string", "Message text to send"),
			}, "contact", "message"),
		},
		{
			Name:        "get_chats",
			Description: "Retrieve the list of chats. Optionally filter by group/personal and limit count",
			InputSchema: objectSchema(map[string]interface{}{
				"group": param("boolean", "true for groups only, false for personal chats only"),
				"count": param("integer", "Maximum number of chats to return"),
			}),
		},
		{
			Name:        "create_group",
			Description: "Create a group chat",
			InputSchema: objectSchema(map[string]interface{}{
				"group_name": param("string", "Name of the new group"),
				"participants": map[string]interface{}{
					"type":        "array",
					"description": "Participants as contact names, phone numbers or chat ids",
					"items":       map[string]interface{}{"type": "string"},
				},
			}, "group_name", "participants"),
		},
		{
			Name:        "get_group_participants",
			Description: "Get participants of a group chat",
			InputSchema: objectSchema(map[string]interface{}{
				"group_id": param("string", "Group chat id ending in @g.us"),
			}, "group_id"),
		},
		{
			Name:        "view_messages",
			Description: "View recent messages from a contact",
			InputSchema: objectSchema(map[string]interface{}{
				"contact": param("string", contactDescription),
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of messages to show, 1 to 100",
					"default":     defaultViewLimit,
				},
			}, "contact"),
		},
		{
			Name:        "get_message",
			Description: "Retrieve a specific message by its ID",
			InputSchema: objectSchema(map[string]interface{}{
				"message_id": param("string", "Message id"),
				"contact":    param("string", "Chat the message belongs to. "+contactDescription),
			}, "message_id"),
		},
		{
			Name:        "get_last_incoming_messages",
			Description: "View recent incoming messages across all chats",
			InputSchema: objectSchema(map[string]interface{}{
				"minutes": map[string]interface{}{
					"type":        "integer",
					"description": "Look-back window in minutes",
					"default":     defaultMinutes,
				},
			}),
		},
		{
			Name:        "get_last_outgoing_messages",
			Description: "View recent outgoing messages across all chats",
			InputSchema: objectSchema(map[string]interface{}{
				"minutes": map[string]interface{}{
					"type":        "integer",
					"description": "Look-back window in minutes",
					"default":     defaultMinutes,
				},
			}),
		},
		{
			Name:        "mark_chat_unread",
			Description: "Mark chat messages as unread",
			InputSchema: objectSchema(map[string]interface{}{
				"contact": param("string", contactDescription),
			}, "contact"),
		},
		{
			Name:        "check_whatsapp_number",
			Description: "Check if a phone number has WhatsApp account",
			InputSchema: objectSchema(map[string]interface{}{
				"phone": param("string", "Phone number with country code"),
			}, "phone"),
		},
		{
			Name:        "get_contact_info",
			Description: "Get detailed information about a contact",
			InputSchema: objectSchema(map[string]interface{}{
				"contact": param("string", contactDescription),
			}, "contact"),
		},
		{
			Name:        "get_my_details",
			Description: "Get detailed information about your WhatsApp account",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "update_profile_picture",
			Description: "Update your WhatsApp profile picture",
			InputSchema: objectSchema(map[string]interface{}{
				"image_path": param("string", "Path to a local image file"),
			}, "image_path"),
		},
		{
			Name:        "get_account_status",
			Description: "Get the current status of your WhatsApp account connection",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
	}
}
