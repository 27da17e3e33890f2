package subscription

// Request はフォームから送信される購読リクエスト。
type Request struct {
	// Email は購読するメールアドレス。必須。
	Email string `json:"email" binding:"required"`
	// FormType は購読元フォームを識別する任意のタグ（例: "waitlist"）。
	FormType string `json:"formtype"`
}

// Response はゲートウェイが返す正規化されたJSONレスポンス。
type Response struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
	// Data は上流APIのレスポンスボディをそのまま格納する。
	Data map[string]any `json:"data,omitempty"`
}

// 呼び出し側へ返す固定メッセージ。内部の詳細はログにのみ出力する。
const (
	msgSubscribed          = "Subscribed successfully"
	errMethodNotAllowed    = "Method not allowed"
	errEmailRequired       = "Email is required"
	errServerConfig        = "Server configuration error"
	errFailedToSubscribe   = "Failed to subscribe"
	errInternalServer      = "Internal server error"
	detailsUnknownUpstream = "Unknown error"
)
