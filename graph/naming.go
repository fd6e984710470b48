package graph

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming is the formatting policy applied to collection, field and
// relation names before they surface in a generated schema.
type Naming interface {
	// TypeName formats a collection name as a type name.
	TypeName(name string) string
	// FieldName formats a field or relation name as a field name.
	FieldName(name string) string
}

// DefaultNaming formats snake or kebab case names as PascalCase type
// names and camelCase field names, keeping common acronyms upper case.
type DefaultNaming struct{}

// TypeName implements Naming.
func (DefaultNaming) TypeName(name string) string { return Pascal(name) }

// FieldName implements Naming.
func (DefaultNaming) FieldName(name string) string { return Camel(name) }

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
	titler   = cases.Title(language.Und)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP",
		"HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC",
		"SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI",
		"UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSRF",
		"XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

func pascalWords(words []string) string {
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = titler.String(w)
	}
	return strings.Join(words, "")
}

// Pascal converts a snake, kebab or space separated name to
// PascalCase.
//
//	user_info  => UserInfo
//	user_id    => UserID
//	full-admin => FullAdmin
func Pascal(s string) string {
	return pascalWords(strings.FieldsFunc(s, isSeparator))
}

// Camel converts a snake, kebab or space separated name to camelCase.
//
//	user_info => userInfo
//	user_id   => userID
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return strings.ToLower(words[0])
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

// Snake converts a PascalCase or camelCase name to snake_case.
//
//	UserInfo => user_info
//	HTTPCode => http_code
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// A separator goes before an upper rune that starts or ends a
		// run of upper runes inside the word.
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) &&
			(unicode.IsLower(rune(s[i+1])) || unicode.IsLower(rune(s[j]))) {
			b.WriteString("_")
		}
		b.WriteRune(unicode.ToLower(r))
		j = i
	}
	return b.String()
}

// Plural returns the plural form of a name.
func Plural(s string) string {
	return rules.Pluralize(s)
}

// Singular returns the singular form of a name.
func Singular(s string) string {
	return rules.Singularize(s)
}
