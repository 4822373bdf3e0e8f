package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"whatsapp-greenapi-mcp/utils"
)

// DefaultAPIURL is the public Green API host
const DefaultAPIURL = "https://api.green-api.com"

// Options configures a Client
type Options struct {
	APIURL     string
	InstanceID string
	APIToken   string
	Timeout    time.Duration
	Logger     *utils.Logger
}

// Client talks to one Green API instance. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *utils.Logger
}

// Response is a raw gateway reply. A non-2xx status is not an error at
// this layer; callers inspect Code and print Data.
type Response struct {
	Code int
	Data json.RawMessage
}

// OK reports whether the gateway answered 200
func (r *Response) OK() bool {
	return r != nil && r.Code == http.StatusOK
}

// Decode unmarshals the payload into v
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}

// Empty reports whether the payload carries no data: no body, null, [] or {}
func (r *Response) Empty() bool {
	switch strings.TrimSpace(string(r.Data)) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

// String returns the raw payload for error texts
func (r *Response) String() string {
	if r == nil {
		return "no response"
	}
	s := strings.TrimSpace(string(r.Data))
	if s == "" {
		return fmt.Sprintf("HTTP %d", r.Code)
	}
	return s
}

// NewClient creates a new Green API client
func NewClient(opts Options) (*Client, error) {
	if opts.InstanceID == "" || opts.APIToken == "" {
		return nil, fmt.Errorf("green api instance id and token are required")
	}
	apiURL := strings.TrimRight(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	httpClient := resty.New().
		SetBaseURL(apiURL+"/waInstance"+opts.InstanceID).
		SetPathParam("apiToken", opts.APIToken).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	return &Client{http: httpClient, logger: logger}, nil
}

// do issues one call to "/<method>/<token>". Only transport failures are
// returned as errors.
func (c *Client) do(ctx context.Context, httpMethod, method string, prepare func(*resty.Request)) (*Response, error) {
	req := c.http.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	resp, err := req.Execute(httpMethod, "/"+method+"/{apiToken}")
	if err != nil {
		c.logger.Error("gateway request failed", map[string]interface{}{
			"method": method,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	c.logger.Debug("gateway request", map[string]interface{}{
		"method":      method,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return &Response{Code: resp.StatusCode(), Data: json.RawMessage(resp.Body())}, nil
}

func (c *Client) get(ctx context.Context, method string) (*Response, error) {
	return c.do(ctx, http.MethodGet, method, nil)
}

func (c *Client) post(ctx context.Context, method string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, method, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	})
}

// GetStateInstance returns the authorization state of the instance
func (c *Client) GetStateInstance(ctx context.Context) (*Response, error) {
	return c.get(ctx, "getStateInstance")
}

// GetStatusInstance returns the socket connection status of the instance
func (c *Client) GetStatusInstance(ctx context.Context) (*Response, error) {
	return c.get(ctx, "getStatusInstance")
}

// GetWaSettings returns the phone, avatar and device of the account
func (c *Client) GetWaSettings(ctx context.Context) (*Response, error) {
	return c.get(ctx, "getWaSettings")
}

// GetSettings returns the instance settings
func (c *Client) GetSettings(ctx context.Context) (*Response, error) {
	return c.get(ctx, "getSettings")
}

// GetContacts returns every contact and group known to the account
func (c *Client) GetContacts(ctx context.Context) (*Response, error) {
	return c.get(ctx, "getContacts")
}

// GetContactInfo returns details of one contact
func (c *Client) GetContactInfo(ctx context.Context, chatID string) (*Response, error) {
	return c.post(ctx, "getContactInfo", map[string]interface{}{"chatId": chatID})
}

// CheckWhatsapp reports whether a phone number has a WhatsApp account
func (c *Client) CheckWhatsapp(ctx context.Context, phone string) (*Response, error) {
	number, err := strconv.ParseInt(phone, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid phone number %q: %w", phone, err)
	}
	return c.post(ctx, "checkWhatsapp", map[string]interface{}{"phoneNumber": number})
}

// SendMessage sends a text message to a chat
func (c *Client) SendMessage(ctx context.Context, chatID, message string) (*Response, error) {
	c.logger.Info("sending message", map[string]interface{}{
		"chat_id": chatID,
		"preview": utils.TruncateString(message, 40),
	})
	return c.post(ctx, "sendMessage", map[string]interface{}{
		"chatId":  chatID,
		"message": message,
	})
}

// GetChatHistory returns up to count messages of a chat, newest first
func (c *Client) GetChatHistory(ctx context.Context, chatID string, count int) (*Response, error) {
	return c.post(ctx, "getChatHistory", map[string]interface{}{
		"chatId": chatID,
		"count":  count,
	})
}

// GetMessage returns one message. chatID may be empty, in which case the
// gateway decides whether the id alone is enough.
func (c *Client) GetMessage(ctx context.Context, chatID, idMessage string) (*Response, error) {
	body := map[string]interface{}{"idMessage": idMessage}
	if chatID != "" {
		body["chatId"] = chatID
	}
	return c.post(ctx, "getMessage", body)
}

// LastIncomingMessages returns incoming messages of the last minutes, newest first
func (c *Client) LastIncomingMessages(ctx context.Context, minutes int) (*Response, error) {
	return c.do(ctx, http.MethodGet, "lastIncomingMessages", func(r *resty.Request) {
		r.SetQueryParam("minutes", strconv.Itoa(minutes))
	})
}

// LastOutgoingMessages returns outgoing messages of the last minutes, newest first
func (c *Client) LastOutgoingMessages(ctx context.Context, minutes int) (*Response, error) {
	return c.do(ctx, http.MethodGet, "lastOutgoingMessages", func(r *resty.Request) {
		r.SetQueryParam("minutes", strconv.Itoa(minutes))
	})
}

// ReadChat marks the messages of a chat as read
func (c *Client) ReadChat(ctx context.Context, chatID string) (*Response, error) {
	return c.post(ctx, "readChat", map[string]interface{}{"chatId": chatID})
}

// CreateGroup creates a group with the given participants
func (c *Client) CreateGroup(ctx context.Context, name string, chatIDs []string) (*Response, error) {
	return c.post(ctx, "createGroup", map[string]interface{}{
		"groupName": name,
		"chatIds":   chatIDs,
	})
}

// GetGroupData returns metadata and participants of a group
func (c *Client) GetGroupData(ctx context.Context, groupID string) (*Response, error) {
	return c.post(ctx, "getGroupData", map[string]interface{}{"groupId": groupID})
}

// SetProfilePicture uploads a local image as the account avatar
func (c *Client) SetProfilePicture(ctx context.Context, imagePath string) (*Response, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	return c.do(ctx, http.MethodPost, "setProfilePicture", func(r *resty.Request) {
		r.SetMultipartField("file", filepath.Base(imagePath), utils.GetMediaTypeFromExtension(imagePath), file)
	})
}
