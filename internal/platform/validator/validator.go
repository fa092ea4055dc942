// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// owner/name, como en el Hub de Hugging Face
	modelIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*(/[A-Za-z0-9][A-Za-z0-9._\-]*)?$`)
)

// Text validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// NormalizeText lleva un texto libre a su forma canónica antes de clasificarlo:
// composición NFC, saltos de línea \n, sin caracteres de control y sin
// espacios al inicio o al final.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return '\n'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

// RuneCount devuelve la longitud del texto en caracteres, no en bytes.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// MaxRunes verifica que un texto no exceda max caracteres.
// Un max <= 0 desactiva el límite.
func MaxRunes(s string, max int) bool {
	if max <= 0 {
		return true
	}
	return RuneCount(s) <= max
}

// Truncate recorta s a max caracteres, añadiendo "…" cuando corta.
func Truncate(s string, max int) string {
	if max <= 0 || RuneCount(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Configuration validators

// IsModelID verifica si un string es un identificador de modelo válido
// (por ejemplo "cardiffnlp/twitter-roberta-base-sentiment-latest").
func IsModelID(id string) bool {
	if len(id) == 0 || len(id) > 200 {
		return false
	}
	return modelIDRegex.MatchString(id)
}

// IsURL verifica si un string es una URL válida.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	// Debe tener scheme y host
	return parsed.Scheme != "" && parsed.Host != ""
}

// IsHTTPURL verifica que la URL use http o https.
func IsHTTPURL(urlStr string) bool {
	if !IsURL(urlStr) {
		return false
	}
	scheme := strings.ToLower(strings.SplitN(urlStr, ":", 2)[0])
	return scheme == "http" || scheme == "https"
}

// IsListenAddr valida una dirección host:port para el servidor web.
// El host puede omitirse (":8080").
func IsListenAddr(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host != "" && net.ParseIP(host) == nil && !isHostname(host) {
		return false
	}
	return IsPort(port)
}

// IsPort valida que un puerto esté en el rango válido [1-65535].
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

func isHostname(h string) bool {
	if len(h) > 253 {
		return false
	}
	for _, label := range strings.Split(h, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if !(r == '-' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
				return false
			}
		}
	}
	return true
}
