package api

import (
	"net/url"
	"strings"
)

// IsExternal сообщает, что URL ведет не на бэкенд приложения.
// Внутренними считаются относительные URL и URL с той же схемой и хостом (с портом), что у baseURL.
func IsExternal(baseURL, rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return true
	}
	return !sameOrigin(base, u)
}

// sameOrigin сравнивает хост целиком, а не префикс строки:
// https://x.com и https://x.com.evil.io разные источники
func sameOrigin(base, u *url.URL) bool {
	if !strings.EqualFold(base.Host, u.Host) {
		return false
	}
	// протокол-относительный URL наследует схему базового
	return u.Scheme == "" || strings.EqualFold(base.Scheme, u.Scheme)
}

// ServiceName выводит имя внешнего сервиса из хоста: без ведущего api. или www.,
// первая метка. Для неразбираемого URL возвращает "External Service".
func ServiceName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "External Service"
	}

	host := u.Hostname()
	if trimmed, ok := strings.CutPrefix(host, "api."); ok {
		host = trimmed
	} else if trimmed, ok := strings.CutPrefix(host, "www."); ok {
		host = trimmed
	}

	name, _, _ := strings.Cut(host, ".")
	if name == "" {
		return "External Service"
	}
	return name
}
