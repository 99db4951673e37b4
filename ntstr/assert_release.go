//go:build !ntstrdebug

package ntstr

// DebugAssertions reports whether termination assertions are compiled in.
const DebugAssertions = false

func assertTerminated[T Unit](s []T) {}
