// Package flash modela avisos de un solo uso que viven en la sesión
// hasta la siguiente página renderizada.
package flash

import "strings"

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Info(msg string) Notice    { return Notice{Kind: KindInfo, Message: msg} }
func Warning(msg string) Notice { return Notice{Kind: KindWarning, Message: msg} }
func Error(msg string) Notice   { return Notice{Kind: KindError, Message: msg} }

// Normalize descarta avisos vacíos o de tipo desconocido.
func Normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
