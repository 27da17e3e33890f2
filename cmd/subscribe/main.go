// ニュースレター購読ゲートウェイのエントリポイント。
// フォームからの購読リクエストを検証し、MailerLiteの購読者APIへ転送する。
// 状態を持たないため、何台並べても互いに干渉しない。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nao1215/subscribe-gateway/internal/config"
	"github.com/nao1215/subscribe-gateway/internal/subscription"
	"github.com/nao1215/subscribe-gateway/pkg/logger"
)

func main() {
	// ローカル開発用。.envが無くても環境変数だけで動作する
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf(".envの読み込みに失敗: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	gin.SetMode(cfg.GinMode)

	if cfg.MailerLiteAPIKey == "" {
		zl.Warn("MailerLite APIキーが未設定です。購読リクエストはすべて500になります")
	}

	server := subscription.NewServer(subscription.Options{
		Addr:            cfg.Addr(),
		APIKey:          cfg.MailerLiteAPIKey,
		BaseURL:         cfg.MailerLiteBaseURL,
		AllowedOrigins:  cfg.AllowedOrigins,
		Logger:          zl,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("購読ゲートウェイを起動します", zap.String("addr", cfg.Addr()))
	if err := server.Run(ctx); err != nil {
		zl.Fatal("購読ゲートウェイの起動に失敗", zap.Error(err))
	}
	zl.Info("購読ゲートウェイを停止しました")
}
