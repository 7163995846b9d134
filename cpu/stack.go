package cpu

const (
	STACK_LIMIT = 1 << 16 // Maximum call depth
)

// Stack holds the lines of pending calls.
type Stack struct {
	Data []int
}

func (s *Stack) Push(line int) {
	s.Data = append(s.Data, line)
}

func (s *Stack) Pop() (line int, ok bool) {
	line, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) >= STACK_LIMIT
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (line int, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
