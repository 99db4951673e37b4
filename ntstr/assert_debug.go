//go:build ntstrdebug

package ntstr

// DebugAssertions reports whether termination assertions are compiled in.
const DebugAssertions = true

func assertTerminated[T Unit](s []T) {
	if Find(s) < 0 {
		panic(ErrUnterminated)
	}
}
