package state

// Slice is the store's view of one entity collection: the loaded items, an
// in-flight flag, and the last fetch error (empty when the fetch succeeded).
type Slice[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

// The reducers below are pure: they take a slice value and return the next
// one. Side effects (service calls) happen in commands, never here.

func reduceFetchStarted[T any](s Slice[T]) Slice[T] {
	s.Loading = true
	s.Error = ""
	return s
}

func reduceFetchSucceeded[T any](s Slice[T], items []T) Slice[T] {
	s.Items = items
	s.Loading = false
	s.Error = ""
	return s
}

func reduceFetchFailed[T any](s Slice[T], err error) Slice[T] {
	s.Loading = false
	s.Error = err.Error()
	return s
}

// reduceUpserted replaces the item matched by sameID, or appends when no
// item matches. It never touches Loading: mutations are item-scoped.
func reduceUpserted[T any](s Slice[T], item T, sameID func(a, b T) bool) Slice[T] {
	items := make([]T, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if sameID(items[i], item) {
			items[i] = item
			s.Items = items
			return s
		}
	}
	s.Items = append(items, item)
	return s
}

func reduceRemoved[T any](s Slice[T], match func(T) bool) Slice[T] {
	items := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if !match(it) {
			items = append(items, it)
		}
	}
	s.Items = items
	return s
}
