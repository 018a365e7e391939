// Package http は外部マーケットデータAPI向けのHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent はリクエストにUser-Agentが設定されていない場合に付与される値です。
const DefaultUserAgent = "tradeiq/1.0"

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Client.Timeout: リクエスト全体のタイムアウト（MARKET_TIMEOUT）
//   - Dialer.Timeout: TCP接続タイムアウト 5秒
//   - MaxIdleConnsPerHost: 同一ホストへの再利用接続数（Yahoo / Twelve Dataは単一ホスト）
//   - ResponseHeaderTimeout: 上流が応答ヘッダーを返すまでの上限
//   - User-Agent: 未設定のリクエストに DefaultUserAgent を付与
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため使用しない
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: userAgent{next: t}}
}

// userAgent はUser-Agentヘッダーが空のリクエストにデフォルト値を設定します。
type userAgent struct {
	next http.RoundTripper
}

func (u userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", DefaultUserAgent)
	return u.next.RoundTrip(r)
}
