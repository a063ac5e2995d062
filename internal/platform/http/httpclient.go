package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はYahoo Finance呼び出し用に設定されたHTTPクライアントを作成します。
// http.DefaultClientにはタイムアウトが無いため、外部呼び出しには常にこちらを使います。
//
// タイムアウトは全体（Client.Timeout、呼び出し元から指定）に加えて、
// TCP接続とTLSハンドシェイクにも個別の上限を設けています。
// 一括クオート取得は同じホストへ連続してリクエストするため、
// アイドル接続を維持して再利用します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
