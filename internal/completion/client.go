// Package completion 向 OpenAI 兼容的 chat completions 接口发送一次请求并取回回复文字
//
// 只做单次尽力而为的请求：不重试、不限流。
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 默认参数
const (
	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultModel        = "gpt-4o"
	DefaultSystemPrompt = "You are a helpful assistant."
	DefaultTimeout      = 60 * time.Second

	// APIKeyEnv 读取 API Key 的环境变量
	APIKeyEnv = "GLYPHSWARM_OPENAI_API_KEY"
)

// ErrNoAPIKey 没有配置 API Key
var ErrNoAPIKey = errors.New("completion: API key not configured")

// Config 客户端配置
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// ConfigFromEnv 从环境变量（以及可选的 .env 文件）构建配置
//
// envFiles 不存在时忽略，解析失败时记录日志；已存在的环境变量不会被 .env 覆盖。
func ConfigFromEnv(envFiles ...string) Config {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("[Completion] Warning: failed to load %s: %v", f, err)
		}
	}
	cfg := Config{
		BaseURL: os.Getenv("GLYPHSWARM_OPENAI_BASE_URL"),
		APIKey:  os.Getenv(APIKeyEnv),
		Model:   os.Getenv("GLYPHSWARM_OPENAI_MODEL"),
	}
	return cfg
}

// Client chat completions 客户端
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient 创建客户端，缺省字段使用默认值
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete 发送用户文字，返回第一条回复的内容
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("completion API returned %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
