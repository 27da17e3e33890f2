package subscription

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/subscribe-gateway/pkg/mailerlite"
	"github.com/nao1215/subscribe-gateway/pkg/middleware"
)

// defaultShutdownTimeout はOptions.ShutdownTimeoutが未指定の場合の待機時間。
const defaultShutdownTimeout = 10 * time.Second

// Options はゲートウェイサーバーの生成オプション。
type Options struct {
	// Addr はHTTPサーバーのリッスンアドレス（例: ":8080"）。
	Addr string
	// APIKey はMailerLite APIのBearerトークン。空の場合、購読リクエストは500で拒否される。
	APIKey string
	// BaseURL はMailerLite APIのベースURL。
	BaseURL string
	// HTTPClient は上流APIの呼び出しに使うHTTPクライアント。nilの場合は既定のクライアントを使う。
	HTTPClient *http.Client
	// AllowedOrigins はCORSで許可するオリジン。空の場合は全オリジンを許可する。
	AllowedOrigins []string
	// Logger は構造化ロガー。nilの場合はログを出力しない。
	Logger *zap.Logger
	// ShutdownTimeout はグレースフルシャットダウンの待機時間。
	ShutdownTimeout time.Duration
}

// Server はニュースレター購読ゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーのリッスンアドレス。
	addr string
	// apiKey はMailerLite APIキー。設定有無の判定にのみ使う。
	apiKey string
	// mailer はMailerLite APIクライアント。
	mailer *mailerlite.Client
	// logger は構造化ロガー。
	logger *zap.Logger
	// shutdownTimeout はグレースフルシャットダウンの待機時間。
	shutdownTimeout time.Duration
}

// NewServer は新しいゲートウェイサーバーを生成する。
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{middleware.AllowAnyOrigin}
	}

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	var clientOpts []mailerlite.Option
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, mailerlite.WithHTTPClient(opts.HTTPClient))
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(origins))

	s := &Server{
		router:          router,
		addr:            opts.Addr,
		apiKey:          opts.APIKey,
		mailer:          mailerlite.New(opts.BaseURL, opts.APIKey, clientOpts...),
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
	s.setupRoutes()

	return s
}

// Handler はゲートウェイのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("シャットダウンを開始します", zap.Duration("timeout", s.shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("グレースフルシャットダウンに失敗: %w", err)
	}
	return nil
}

// setupRoutes はルーティングを設定する。
// エッジ関数と同様にパスを問わず全リクエストを購読ハンドラで受け付ける。
func (s *Server) setupRoutes() {
	s.router.NoRoute(s.handleSubscribe())
}

// handleSubscribe は購読リクエストを処理するハンドラを返す。
// OPTIONSはCORSミドルウェアが先に200で終了させるため、ここには到達しない。
func (s *Server) handleSubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := s.logger.With(zap.String("request_id", middleware.GetRequestID(c)))

		if c.Request.Method != http.MethodPost {
			c.JSON(http.StatusMethodNotAllowed, Response{Error: errMethodNotAllowed})
			return
		}

		// 認証情報が無ければボディの内容に関わらず上流は呼べない
		if s.apiKey == "" {
			logger.Error("MailerLite APIキーが設定されていません")
			c.JSON(http.StatusInternalServerError, Response{Error: errServerConfig})
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: errEmailRequired})
			return
		}

		payload := mailerlite.NewSubscriberPayload(req.Email, req.FormType)
		resp, err := s.mailer.CreateSubscriber(c.Request.Context(), payload)
		if err != nil {
			logger.Error("購読者作成APIの呼び出しに失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{Error: errInternalServer})
			return
		}

		if !resp.OK() {
			logger.Warn("MailerLite APIが購読を拒否しました",
				zap.Int("upstream_status", resp.StatusCode),
				zap.Any("upstream_body", resp.Body),
			)
			details := resp.Message()
			if details == "" {
				details = detailsUnknownUpstream
			}
			c.JSON(resp.StatusCode, Response{
				Error:   errFailedToSubscribe,
				Details: details,
			})
			return
		}

		c.JSON(http.StatusOK, Response{
			Success: true,
			Message: msgSubscribed,
			Data:    resp.Body,
		})
	}
}
