package console

// Index resolves foreign identifiers to display labels. It is built once per fetch.
type Index[T Keyed] struct {
	byID    map[int]T
	label   func(T) string
	missing string
}

func NewIndex[T Keyed](items []T, label func(T) string, missing string) Index[T] {
	byID := make(map[int]T, len(items))
	for _, item := range items {
		byID[item.Key()] = item
	}
	return Index[T]{byID: byID, label: label, missing: missing}
}

func (ix Index[T]) Get(id int) (T, bool) {
	item, ok := ix.byID[id]
	return item, ok
}

// Label returns the item's label, or the placeholder when id does not resolve.
func (ix Index[T]) Label(id int) string {
	item, ok := ix.byID[id]
	if !ok {
		return ix.missing
	}
	return ix.label(item)
}

func (ix Index[T]) Len() int { return len(ix.byID) }
