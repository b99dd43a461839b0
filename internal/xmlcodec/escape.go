package xmlcodec

import "strings"

// EscapeXML substitutes the five XML-escapable characters in attribute
// values. The ampersand must be replaced first so already-substituted
// entities are not escaped twice.
func EscapeXML(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
