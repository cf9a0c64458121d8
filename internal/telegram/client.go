package telegram

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/config"
)

const defaultAPIBase = "https://api.telegram.org"

type Client struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		token:   cfg.TelegramBotToken,
		chatID:  cfg.TelegramAdminChatID,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether alerts will actually be delivered.
func (c *Client) IsConfigured() bool {
	return c != nil && c.token != "" && c.chatID != ""
}

func (c *Client) SendAlert(msg string) error {
	if !c.IsConfigured() {
		return nil
	}
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	vals := url.Values{}
	vals.Set("chat_id", c.chatID)
	vals.Set("text", "🚨 tierhub ERROR: "+msg)

	resp, err := c.client.PostForm(apiURL, vals)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}
