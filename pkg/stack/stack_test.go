package stack

import "testing"

func TestPushPop(t *testing.T) {
	s := New[int](4)

	for i := 0; i < 10; i++ {
		s.Push(i)
	}
	if s.Len() != 10 {
		t.Fatalf("Expected length 10 but got %d", s.Len())
	}

	for i := 9; i >= 0; i-- {
		v, ok := s.Pop()
		if !ok {
			t.Fatalf("Expected a value but the stack was empty")
		}
		if v != i {
			t.Fatalf("Expected %d but got %d", i, v)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Fatalf("Expected the stack to be empty")
	}
}
