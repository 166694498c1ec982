// Package acl is the anti-corruption layer between QuoteFlow and the public
// quote APIs.
//
// Each upstream gets a small adapter that owns its wire DTO, translates it
// into [domain.RawQuote], and maps every transport failure onto
// [domain.UpstreamError]. Nothing outside this package sees an upstream
// field name or a [clients] error.
//
// Adapters are deliberately lenient: records with blank fields are passed
// through, and the resolver substitutes defaults when it normalizes them.
package acl
