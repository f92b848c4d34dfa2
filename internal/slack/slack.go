// Package slack posts the leave report to a Slack incoming webhook as
// a Block Kit message.
package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bryan-cox/whosout/internal/report"
)

// Client posts messages to one incoming webhook URL.
type Client struct {
	WebhookURL string
	HTTPClient *http.Client
}

// New returns a client for the given webhook URL.
func New(webhookURL string) *Client {
	return &Client{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Message is the webhook payload.
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block is one Block Kit element. Plain maps keep the builder close to
// the JSON Slack actually wants.
type Block map[string]interface{}

// BuildMessage renders the report as Block Kit: a holidays section, an
// on-leave section, or a fallback line when both are empty. Multi-day
// leave gets an italic "(until Weekday, D Month)" suffix naming the
// first day back.
func BuildMessage(rep report.Report) Message {
	var blocks []Block

	if holidays := rep.Holidays(); len(holidays) > 0 {
		var sections []Block
		for _, item := range holidays {
			sections = append(sections, richTextSection(textElement(item.Name, nil)))
		}
		blocks = append(blocks, headerBlock(":calendar: Holidays"), bulletList(sections))
	}

	if leave := rep.Leave(); len(leave) > 0 {
		var sections []Block
		for _, item := range leave {
			elements := []Block{textElement(item.Name, Block{"bold": true})}
			if !item.End.Equal(item.Start) {
				until := item.End.Next().Format("Monday, 2 January")
				elements = append(elements, textElement(fmt.Sprintf(" (until %s)", until), Block{"italic": true}))
			}
			sections = append(sections, richTextSection(elements...))
		}
		blocks = append(blocks, headerBlock(":wave: On leave"), bulletList(sections))
	}

	if len(blocks) == 0 {
		blocks = append(blocks, Block{
			"type": "section",
			"text": Block{"type": "mrkdwn", "text": "*Nobody is on leave today*"},
		})
	}

	return Message{Blocks: blocks}
}

func headerBlock(text string) Block {
	return Block{
		"type": "header",
		"text": Block{"type": "plain_text", "text": text, "emoji": true},
	}
}

func textElement(text string, style Block) Block {
	el := Block{"type": "text", "text": text}
	if style != nil {
		el["style"] = style
	}
	return el
}

func richTextSection(elements ...Block) Block {
	return Block{"type": "rich_text_section", "elements": elements}
}

func bulletList(sections []Block) Block {
	return Block{
		"type": "rich_text",
		"elements": []Block{{
			"type":     "rich_text_list",
			"style":    "bullet",
			"elements": sections,
		}},
	}
}

// Post sends the message to the webhook, failing on any non-2xx reply.
func (c *Client) Post(msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode slack message: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}
