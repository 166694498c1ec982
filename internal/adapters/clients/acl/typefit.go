package acl

import (
	"strings"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// TypeFitName identifies the secondary source.
const TypeFitName = "typefit"

// typeFitQuote is one element of the Type.fit list. Author is null for
// anonymous quotes and, on newer dumps, carries a ", type.fit" suffix.
type typeFitQuote struct {
	Text   string  `json:"text"`
	Author *string `json:"author"`
}

const typeFitAuthorSuffix = ", type.fit"

// TypeFitClient lists quotes from type.fit.
type TypeFitClient struct {
	listSource[typeFitQuote]
}

// NewTypeFitClient creates the adapter. An empty name or path selects the
// defaults.
func NewTypeFitClient(client getter, name, path string) *TypeFitClient {
	return &TypeFitClient{listSource[typeFitQuote]{
		client:    client,
		name:      orDefault(name, TypeFitName),
		path:      orDefault(path, DefaultQuotesPath),
		translate: translateTypeFit,
	}}
}

func translateTypeFit(t typeFitQuote) domain.RawQuote {
	var author string
	if t.Author != nil {
		author = strings.TrimSpace(strings.TrimSuffix(*t.Author, typeFitAuthorSuffix))
	}

	return domain.RawQuote{Text: t.Text, Author: author}
}
