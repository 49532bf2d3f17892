// Package stack implements a simple generic LIFO stack.
package stack

type Stack[T any] struct {
	xs []T
}

func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{xs: make([]T, 0, capacity)}
}

func (s *Stack[T]) Push(v T) {
	s.xs = append(s.xs, v)
}

// Pop removes and returns the top element.  The second return is false when
// the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.xs) == 0 {
		var zero T
		return zero, false
	}
	v := s.xs[len(s.xs)-1]
	s.xs = s.xs[:len(s.xs)-1]
	return v, true
}

func (s *Stack[T]) Len() int {
	return len(s.xs)
}
