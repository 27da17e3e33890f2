// Package subscription はニュースレター購読ゲートウェイの内部実装を提供する。
//
// ブラウザのフォームから受け取った購読リクエストを検証し、MailerLiteの
// 購読者APIへ1回だけ転送して、その結果を正規化したJSONで返す。
// 状態は一切保持せず、リトライやキューイングも行わない。
// すべての応答経路（エラーを含む）にCORSヘッダーを付与する。
package subscription
