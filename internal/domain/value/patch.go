package value

// Patch описывает поле частичного обновления с тремя состояниями:
// не передано, передано null (очистить), передано значение.
type Patch[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Patch[T] {
	return Patch[T]{Value: v, Set: true}
}

func Null[T any]() Patch[T] {
	return Patch[T]{Set: true, Null: true}
}

// Ptr возвращает новое значение поля: nil для null.
func (p Patch[T]) Ptr() *T {
	if !p.Set || p.Null {
		return nil
	}

	v := p.Value

	return &v
}

// Apply перезаписывает dst, если поле было передано.
func (p Patch[T]) Apply(dst **T) {
	if p.Set {
		*dst = p.Ptr()
	}
}
