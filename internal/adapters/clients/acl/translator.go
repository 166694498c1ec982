package acl

// Translator converts one upstream DTO into a domain value.
type Translator[E any, D any] func(ext E) D

// TranslateSlice applies translate to every item, preserving order.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) []D {
	out := make([]D, len(items))
	for i, item := range items {
		out[i] = translate(item)
	}

	return out
}
