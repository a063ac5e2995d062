// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は死活監視用の /healthz エンドポイントを処理します。
// DBやプロバイダーには触れず、プロセスが応答できることだけを報告します。
func Health(c *gin.Context) {
	// 監視側が古い結果を使わないようキャッシュを無効化
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
