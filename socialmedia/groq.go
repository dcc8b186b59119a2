package socialmedia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/furzing/techarabihackathon/chassis/metrics"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// systemPrompt pins the assistant persona for every completion.
const systemPrompt = `أنت خبير في إدارة وسائل التواصل الاجتماعي والتسويق الرقمي. مهمتك هي تقديم استراتيجيات تسويقية فعالة ومحتوى جذاب للشركات والأعمال في المنطقة العربية.

يجب أن تراعي:
- الثقافة العربية والقيم المحلية
- أفضل الممارسات في التسويق الرقمي
- الاتجاهات الحديثة في وسائل التواصل الاجتماعي
- تقديم إجابات عملية وقابلة للتطبيق
- الإجابة باللغة العربية بأسلوب مهني وواضح`

// ChatClient answers a single user prompt.
type ChatClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// GroqClient - ChatClient backed by Groq's OpenAI-compatible API.
type GroqClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewGroqClient ...
func NewGroqClient(apiKey, model string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ API key not found. Please set GROQ_API_KEY in your environment")
	}
	if model == "" {
		model = "qwen/qwen3-32b"
	}
	return &GroqClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: groqEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends one completion request and returns the trimmed answer.
func (c *GroqClient) Chat(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
		TopP:        0.9,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.LLMRequests.WithLabelValues("socialmedia", "error").Inc()
		return "", fmt.Errorf("error sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.LLMRequests.WithLabelValues("socialmedia", "error").Inc()
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat request failed: %s, body: %s", resp.Status, string(raw))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.LLMRequests.WithLabelValues("socialmedia", "error").Inc()
		return "", fmt.Errorf("error unmarshaling chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		metrics.LLMRequests.WithLabelValues("socialmedia", "error").Inc()
		return "", fmt.Errorf("chat response contained no choices")
	}
	metrics.LLMRequests.WithLabelValues("socialmedia", "ok").Inc()
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
