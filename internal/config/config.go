// Package config は環境変数からゲートウェイの設定を読み込む。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config はゲートウェイプロセス全体の設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8080"`
	// MailerLiteAPIKey はMailerLite APIのBearerトークン。
	// 未設定でも起動はできるが、購読リクエストは500で拒否される。
	MailerLiteAPIKey string `env:"MAILER_LITE_API_KEY"`
	// MailerLiteBaseURL はMailerLite APIのベースURL。
	MailerLiteBaseURL string `env:"MAILER_LITE_BASE_URL" envDefault:"https://connect.mailerlite.com"`
	// AllowedOrigins はCORSで許可するオリジン。"*" は全オリジンを許可する。
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	// LogLevel はzapのログレベル（debug, info, warn, error）。
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogDevelopment はコンソール形式のログ出力を有効にする。
	LogDevelopment bool `env:"LOG_DEVELOPMENT" envDefault:"false"`
	// GinMode はginの動作モード（debug, release, test）。
	GinMode string `env:"GIN_MODE" envDefault:"release"`
	// ShutdownTimeout はグレースフルシャットダウンの待機時間。
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	return cfg, nil
}

// Addr はHTTPサーバーのリッスンアドレスを返す。
func (c *Config) Addr() string {
	return ":" + c.Port
}
