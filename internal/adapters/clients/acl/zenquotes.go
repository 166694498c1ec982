package acl

import "github.com/jsamuelsen/quoteflow/internal/domain"

// ZenQuotesName identifies the primary source.
const ZenQuotesName = "zenquotes"

// zenQuote is one element of the ZenQuotes list response. H is a
// pre-rendered HTML snippet and is dropped.
type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
	H string `json:"h"`
}

// ZenQuotesClient lists quotes from zenquotes.io.
type ZenQuotesClient struct {
	listSource[zenQuote]
}

// NewZenQuotesClient creates the adapter. An empty name or path selects the
// defaults.
func NewZenQuotesClient(client getter, name, path string) *ZenQuotesClient {
	return &ZenQuotesClient{listSource[zenQuote]{
		client:    client,
		name:      orDefault(name, ZenQuotesName),
		path:      orDefault(path, DefaultQuotesPath),
		translate: func(z zenQuote) domain.RawQuote { return domain.RawQuote{Q: z.Q, A: z.A} },
	}}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
