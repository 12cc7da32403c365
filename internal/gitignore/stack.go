package gitignore

// Stack is the ordered sequence of rule sets discovered between a walk's
// root and its current directory. The walker pushes a set when it enters a
// directory holding an ignore file and pops it when it leaves that
// directory's subtree; every push must pair with a pop on every exit path.
//
// The stack is owned by the single walking goroutine and is not safe for
// concurrent use.
type Stack struct {
	sets []*RuleSet
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds the rule set of a directory being entered.
func (s *Stack) Push(rs *RuleSet) {
	s.sets = append(s.sets, rs)
}

// Pop removes the most recently pushed rule set. It panics on an empty
// stack: an unbalanced pop is a walker defect, not a runtime condition.
func (s *Stack) Pop() {
	if len(s.sets) == 0 {
		panic("gitignore: pop of empty stack")
	}
	s.sets = s.sets[:len(s.sets)-1]
}

// Depth returns the number of active rule sets.
func (s *Stack) Depth() int { return len(s.sets) }

// Ignored reports whether path is excluded by the active rule sets. The
// path is slash-separated in the same form the rule set roots were recorded
// in; isDir appends the trailing slash directory subjects are tested with.
//
// Sets are consulted innermost-first and the first set in which any rule
// matches decides the verdict, with negation beating a plain match inside
// that set. An outer set is only consulted when every inner set is silent,
// so a nested negation rule can re-include a path an ancestor's rule would
// ignore. A path no set matches is not ignored.
func (s *Stack) Ignored(path string, isDir bool) bool {
	subject := path
	if isDir {
		subject += "/"
	}

	for i := len(s.sets) - 1; i >= 0; i-- {
		rs := s.sets[i]
		if rs.Len() == 0 {
			continue
		}
		rel, ok := rs.relative(subject)
		if !ok {
			continue
		}
		switch rs.Evaluate(rel) {
		case VerdictKeep:
			return false
		case VerdictIgnore:
			return true
		}
	}
	return false
}
