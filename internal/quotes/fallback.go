// Package quotes picks the quote shown to a user from an ordered chain of
// sources ending in a built-in fallback table.
package quotes

import "github.com/jsamuelsen/quoteflow/internal/domain"

// FallbackSource is the name reported when the built-in table supplied the quote.
const FallbackSource = "fallback"

// Table maps a category onto its local quotes. Every list is non-empty.
type Table map[string][]domain.RawQuote

// Lookup returns the quotes for category, or the DefaultCategory list when
// the category is unknown or empty.
func (t Table) Lookup(category string) []domain.RawQuote {
	if list := t[category]; len(list) > 0 {
		return list
	}

	return t[domain.DefaultCategory]
}

// DefaultTable returns the built-in fallback quotes.
func DefaultTable() Table {
	return Table{
		domain.CategoryMotivational: {
			{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
			{Text: "It always seems impossible until it's done.", Author: "Nelson Mandela"},
			{Text: "Don't watch the clock; do what it does. Keep going.", Author: "Sam Levenson"},
			{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
			{Text: "Act as if what you do makes a difference. It does.", Author: "William James"},
			{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs"},
		},
		domain.CategoryFunny: {
			{Text: "I am so clever that sometimes I don't understand a single word of what I am saying.", Author: "Oscar Wilde"},
			{Text: "People say nothing is impossible, but I do nothing every day.", Author: "A. A. Milne"},
			{Text: "The road to success is dotted with many tempting parking spaces.", Author: "Will Rogers"},
			{Text: "I never forget a face, but in your case I'll be glad to make an exception.", Author: "Groucho Marx"},
			{Text: "Behind every great man is a woman rolling her eyes.", Author: "Jim Carrey"},
		},
		domain.CategoryInspirational: {
			{Text: "What you get by achieving your goals is not as important as what you become by achieving your goals.", Author: "Zig Ziglar"},
			{Text: "The best way to predict the future is to create it.", Author: "Peter Drucker"},
			{Text: "You are never too old to set another goal or to dream a new dream.", Author: "C. S. Lewis"},
		},
		domain.CategoryLife: {
			{Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
			{Text: "In the end, it's not the years in your life that count. It's the life in your years.", Author: "Abraham Lincoln"},
			{Text: "Life is really simple, but we insist on making it complicated.", Author: "Confucius"},
		},
		domain.CategoryWisdom: {
			{Text: "The only true wisdom is in knowing you know nothing.", Author: "Socrates"},
			{Text: "Knowing yourself is the beginning of all wisdom.", Author: "Aristotle"},
			{Text: "Turn your wounds into wisdom.", Author: "Oprah Winfrey"},
		},
	}
}
