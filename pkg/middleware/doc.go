// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// CORS設定、パニックリカバリ、リクエストIDの付与、zapによるアクセスログなど、
// ゲートウェイのすべての応答経路に適用するミドルウェアを含む。
package middleware
