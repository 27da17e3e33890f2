package mailerlite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// subscribersPath は購読者作成エンドポイントのパス。
const subscribersPath = "/api/subscribers"

// StatusActive は購読者を即座に有効化するステータス値。
const StatusActive = "active"

// SubscriberFields は購読者に付与するカスタムフィールド。
type SubscriberFields struct {
	// FormType は購読元フォームを識別する自由形式のタグ。
	FormType string `json:"formtype"`
}

// SubscriberPayload は購読者作成APIへ送信するリクエストボディ。
type SubscriberPayload struct {
	// Email は購読者のメールアドレス。
	Email string `json:"email"`
	// Status は購読者のステータス。常に StatusActive を指定する。
	Status string `json:"status"`
	// Fields はカスタムフィールド。フォーム種別が無い場合は送信しない。
	Fields *SubscriberFields `json:"fields,omitempty"`
}

// NewSubscriberPayload はメールアドレスとフォーム種別から送信ペイロードを構築する。
// formTypeが空の場合、fieldsは省略される。
func NewSubscriberPayload(email, formType string) SubscriberPayload {
	p := SubscriberPayload{
		Email:  email,
		Status: StatusActive,
	}
	if formType != "" {
		p.Fields = &SubscriberFields{FormType: formType}
	}
	return p
}

// Response は上流APIの応答。
type Response struct {
	// StatusCode は上流APIが返したHTTPステータスコード。
	StatusCode int
	// Body はデコード済みのレスポンスボディ。構造は仮定しない。
	Body map[string]any
}

// OK は上流APIが2xxを返したかどうかを報告する。
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Message はレスポンスボディのmessageフィールドを返す。存在しなければ空文字。
func (r *Response) Message() string {
	msg, _ := r.Body["message"].(string)
	return msg
}

// Client はMailerLite APIクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL はMailerLite APIのベースURL。
	baseURL string
	// apiKey はBearer認証に使うAPIキー。
	apiKey string
}

// Option はClientの生成オプション。
type Option func(*Client)

// WithHTTPClient は内部で使用するHTTPクライアントを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New は新しいMailerLite APIクライアントを生成する。
// タイムアウトは設定せず、トランスポートの既定動作とリクエストのコンテキストに従う。
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSubscriber は購読者を作成する。既存の購読者であれば上流側で更新される。
// 上流APIが2xx以外を返してもエラーにはならず、Responseにステータスとボディが入る。
// エラーになるのは送信失敗とレスポンスボディのデコード失敗のみ。
func (c *Client) CreateSubscriber(ctx context.Context, payload SubscriberPayload) (*Response, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+subscribersPath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("レスポンスボディのデシリアライズに失敗: status=%d, body=%s: %w", resp.StatusCode, string(raw), err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
