package eventstore

import "context"

// Record is implemented by pointers to stored entities.
type Record interface {
	RecordID() string
	SetRecordID(id string)
}

type recordPtr[T any] interface {
	*T
	Record
}

// Collection is an insertion-ordered list of records stored under one key.
type Collection[T any, P recordPtr[T]] struct {
	store *Store
	key   string
}

// NewCollection returns the collection stored under key.
func NewCollection[T any, P recordPtr[T]](s *Store, key string) *Collection[T, P] {
	return &Collection[T, P]{store: s, key: key}
}

func (c *Collection[T, P]) load(ctx context.Context) ([]T, readResult) {
	var items []T
	res := c.store.read(ctx, c.key, &items)
	if res != readOK {
		return nil, res
	}
	return items, res
}

// Append stores rec with a freshly generated id and returns the stored copy.
func (c *Collection[T, P]) Append(ctx context.Context, rec T) T {
	P(&rec).SetRecordID(c.store.newID())

	unlock := c.store.lock(c.key)
	defer unlock()

	items, res := c.load(ctx)
	if res == readFailed {
		c.store.log.WarnContext(ctx, "append dropped", "key", c.key, "id", P(&rec).RecordID())
		return rec
	}
	items = append(items, rec)
	c.store.write(ctx, c.key, items)
	return rec
}

// ListAll returns every record in insertion order.
func (c *Collection[T, P]) ListAll(ctx context.Context) []T {
	items, _ := c.load(ctx)
	if items == nil {
		return []T{}
	}
	return items
}

// UpdateByID applies fn to the record with the given id and persists the
// result. It reports whether a record was updated; an unknown id is a no-op.
func (c *Collection[T, P]) UpdateByID(ctx context.Context, id string, fn func(*T)) bool {
	unlock := c.store.lock(c.key)
	defer unlock()

	items, res := c.load(ctx)
	if res != readOK {
		return false
	}
	for i := range items {
		if P(&items[i]).RecordID() == id {
			fn(&items[i])
			return c.store.write(ctx, c.key, items)
		}
	}
	return false
}

// UpdateWhere applies fn to every record matching pred in one write and
// returns the updated records.
func (c *Collection[T, P]) UpdateWhere(ctx context.Context, pred func(T) bool, fn func(*T)) []T {
	unlock := c.store.lock(c.key)
	defer unlock()

	items, res := c.load(ctx)
	if res != readOK {
		return nil
	}
	var changed []T
	for i := range items {
		if pred(items[i]) {
			fn(&items[i])
			changed = append(changed, items[i])
		}
	}
	if len(changed) == 0 {
		return nil
	}
	if !c.store.write(ctx, c.key, items) {
		return nil
	}
	return changed
}
