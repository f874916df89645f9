// Package assist wraps the external generative-text service. It is consumed
// as a black box: every failure collapses into a fixed fallback string, never
// an error the rest of the application has to handle.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lumina/internal/domain"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

	pitchFallbackError       = "The ultimate choice for your lifestyle."
	pitchFallbackEmpty       = "Experience quality like never before."
	descriptionFallbackError = "High-quality product designed to meet your needs."
	descriptionFallbackEmpty = "A premium product designed for the modern lifestyle."
	chatFallback             = "I'm having a little trouble connecting to my fashion database right now. Please try again in a moment."
)

type Client struct {
	APIKey   string
	Model    string
	Endpoint string
	HTTP     *http.Client
}

func New(apiKey, model, endpoint string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Wire shapes for the generateContent API.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, system string, history []content) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("assist: no api key configured")
	}

	req := generateRequest{Contents: history}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.Endpoint, c.Model, c.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("assist: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	var text strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
		break
	}
	return strings.TrimSpace(text.String()), nil
}

func (c *Client) oneShot(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "", []content{{Role: "user", Parts: []part{{Text: prompt}}}})
}

// GenerateProductPitch returns a marketing one-liner for a product, or a
// fixed fallback when the service is unreachable or answers empty.
func (c *Client) GenerateProductPitch(ctx context.Context, name, description string) string {
	prompt := fmt.Sprintf(
		"Write a compelling, luxury marketing one-liner (max 20 words) for a product named %q.\n"+
			"Base it on this description: %q.\nFocus on emotion and lifestyle.",
		name, description)
	text, err := c.oneShot(ctx, prompt)
	if err != nil {
		return pitchFallbackError
	}
	if text == "" {
		return pitchFallbackEmpty
	}
	return text
}

// GenerateProductDescription drafts catalog copy for the admin product
// editor, degrading to a fixed fallback on any failure.
func (c *Client) GenerateProductDescription(ctx context.Context, name, category, features string) string {
	prompt := fmt.Sprintf(
		"Write a sophisticated, sales-oriented product description (approx 30-40 words) for a new e-commerce product.\n"+
			"Name: %s\nCategory: %s\nKey Features: %s\n\nThe tone should be premium and enticing.",
		name, category, features)
	text, err := c.oneShot(ctx, prompt)
	if err != nil {
		return descriptionFallbackError
	}
	if text == "" {
		return descriptionFallbackEmpty
	}
	return text
}

// Chat is a stateful session primed with a catalog summary. History lives in
// the session; each Send appends the user turn and the model's reply.
type Chat struct {
	client  *Client
	system  string
	history []content
}

type catalogEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (c *Client) NewChat(catalog []domain.Product) *Chat {
	summary := make([]catalogEntry, 0, len(catalog))
	for _, p := range catalog {
		summary = append(summary, catalogEntry{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Category:    string(p.Category),
			Description: p.Description,
		})
	}
	b, _ := json.Marshal(summary)

	system := fmt.Sprintf(`You are 'Operator', an expert personal stylist and shopping assistant for the 'Lumina' e-commerce store.
Your tone is sophisticated, helpful, and concise.
You have access to the following product catalog:
%s

When a user asks for recommendations:
1. Suggest products from the catalog that fit their needs.
2. Explain WHY you selected them.
3. Be friendly and engaging.

If the user asks about something not in the store, politely guide them back to available categories (Clothing, Electronics, Home, Accessories).
Do not invent products that are not in the list above unless you are speculating on future trends (make it clear you are speculating).`, string(b))

	return &Chat{client: c, system: system}
}

// Send runs one user turn. A service failure answers with the fixed apology
// and leaves the failed turn out of the history.
func (ch *Chat) Send(ctx context.Context, message string) string {
	turn := content{Role: "user", Parts: []part{{Text: message}}}
	reply, err := ch.client.generate(ctx, ch.system, append(ch.history, turn))
	if err != nil || reply == "" {
		return chatFallback
	}
	ch.history = append(ch.history, turn, content{Role: "model", Parts: []part{{Text: reply}}})
	return reply
}
