// Package mailerlite はMailerLite購読者APIを呼び出すクライアントを提供する。
//
// 購読者の作成（既存の場合は更新）のみを扱う。上流APIのエラー応答は
// Goのエラーとしてではなくステータスコードとボディのまま呼び出し側へ返し、
// 呼び出し側がそのまま転送できるようにする。
package mailerlite
