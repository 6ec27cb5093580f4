package eventstore

import "context"

// Doc is a single record stored under one key, with a default used when the
// key is missing or unreadable.
type Doc[T any] struct {
	store *Store
	key   string
	def   func() T
}

// NewDoc returns the document stored under key.
func NewDoc[T any](s *Store, key string, def func() T) *Doc[T] {
	return &Doc[T]{store: s, key: key, def: def}
}

// Load returns the stored value and whether it was read successfully.
func (d *Doc[T]) Load(ctx context.Context) (T, bool) {
	var v T
	if d.store.read(ctx, d.key, &v) != readOK {
		return d.def(), false
	}
	return v, true
}

// Get returns the stored value or the default.
func (d *Doc[T]) Get(ctx context.Context) T {
	v, _ := d.Load(ctx)
	return v
}

// Set replaces the stored value.
func (d *Doc[T]) Set(ctx context.Context, v T) bool {
	unlock := d.store.lock(d.key)
	defer unlock()
	return d.store.write(ctx, d.key, v)
}

// Update runs a read-modify-write of the value under the key mutex and
// returns the new value. When the read fails outright the change is applied
// to the default for the caller's benefit but not persisted.
func (d *Doc[T]) Update(ctx context.Context, fn func(*T)) T {
	unlock := d.store.lock(d.key)
	defer unlock()

	var v T
	res := d.store.read(ctx, d.key, &v)
	if res != readOK {
		v = d.def()
	}
	fn(&v)
	if res == readFailed {
		d.store.log.WarnContext(ctx, "update dropped", "key", d.key)
		return v
	}
	d.store.write(ctx, d.key, v)
	return v
}

// Init writes the default when the key is missing or corrupt and reports
// whether it wrote. An unreadable key is left alone.
func (d *Doc[T]) Init(ctx context.Context) bool {
	unlock := d.store.lock(d.key)
	defer unlock()

	var v T
	switch d.store.read(ctx, d.key, &v) {
	case readMissing, readCorrupt:
		return d.store.write(ctx, d.key, d.def())
	default:
		return false
	}
}
