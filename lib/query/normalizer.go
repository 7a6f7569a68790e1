package query

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Query is a normalized command line.
// SubVerb is NoSubVerb unless the verb requires a sub-verb.
// Params never contains the verb or sub-verb token and is never nil.
type Query struct {
	Verb    Verb     `json:"verb" yaml:"verb"`
	SubVerb SubVerb  `json:"sub_verb,omitempty" yaml:"sub_verb,omitempty"`
	Params  []string `json:"params" yaml:"params"`
}

// HasSubVerb reports whether the query carries a sub-verb.
func (q Query) HasSubVerb() bool {
	return q.SubVerb != NoSubVerb
}

// String returns the canonical command line of the query.
func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString(string(q.Verb))
	if q.HasSubVerb() {
		sb.WriteByte(' ')
		sb.WriteString(string(q.SubVerb))
	}
	for _, p := range q.Params {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	return sb.String()
}

// Normalizer turns raw command lines into queries using a Vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	vocab *Vocabulary
}

// NewNormalizer creates a normalizer backed by vocab.
func NewNormalizer(vocab *Vocabulary) *Normalizer {
	return &Normalizer{vocab: vocab}
}

var defaultNormalizer = sync.OnceValue(func() *Normalizer {
	return NewNormalizer(DefaultVocabulary())
})

// Parse normalizes raw with the default vocabulary.
func Parse(raw string) (Query, error) {
	return defaultNormalizer().Parse(raw)
}

// Parse splits raw on whitespace, resolves the verb (and the sub-verb, if the
// verb requires one) and returns the remaining tokens as params.
// It stops at the first token that cannot be resolved.
func (n *Normalizer) Parse(raw string) (Query, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Query{}, &Error{Code: ErrCEmptyQuery}
	}

	verb, ok := n.vocab.LookupVerb(upper(tokens[0]))
	if !ok {
		return Query{}, &Error{Code: ErrCUnknownCommand, Token: tokens[0]}
	}
	rest := tokens[1:]

	subVerb := NoSubVerb
	if n.vocab.RequiresSubVerb(verb) {
		if len(rest) == 0 {
			return Query{}, &Error{Code: ErrCMissingKeyword, Verb: verb}
		}
		if subVerb, ok = n.vocab.LookupSubVerb(upper(rest[0])); !ok {
			return Query{}, &Error{Code: ErrCUnknownKeyword, Verb: verb, Token: rest[0]}
		}
		rest = rest[1:]
	}

	return Query{
		Verb:    verb,
		SubVerb: subVerb,
		Params:  append(make([]string, 0, len(rest)), rest...),
	}, nil
}

// upper maps a token to upper case independent of the process locale.
// A Caser is not safe for concurrent use, so one is created per call.
func upper(token string) string {
	return cases.Upper(language.Und).String(token)
}
