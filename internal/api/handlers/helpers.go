package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// MethodNotAllowedXML is answered to every non-POST webhook call.
const MethodNotAllowedXML = xmlHeader + `<Response><Message>Method Not Allowed</Message></Response>`

var xmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeTwiML answers a messaging response carrying a single chat message.
func writeTwiML(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeXML(w, r, status, twiML(msg))
}

func writeXML(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		log.Printf("write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func twiML(msg string) string {
	return xmlHeader + "<Response><Message>" + escapeXML(msg) + "</Message></Response>"
}

// escapeXML makes msg safe as element text: markup characters are escaped and
// characters XML 1.0 cannot carry are dropped. Newlines are kept literal.
func escapeXML(msg string) string {
	if !utf8.ValidString(msg) {
		msg = strings.ToValidUTF8(msg, "")
	}
	msg = strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, msg)
	return xmlEscaper.Replace(msg)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
