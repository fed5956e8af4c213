package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType menentukan jenis client dari header eksplisit atau User-Agent.
// Header X-Client-Type menang jika ada; fallback ke deteksi User-Agent kasar.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") || strings.Contains(ua, "cfnetwork") {
		return ClientMobile
	}

	return ClientWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
