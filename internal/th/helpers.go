package th

import (
	"fmt"
	"strings"
	"sync"
)

// Name generates a test name. Works the same way as fmt.Sprint, but adds
// spaces between all arguments.
func Name(args ...any) string {
	res := fmt.Sprintln(args...)
	return strings.TrimSpace(res)
}

// DoConcurrently runs every function in ff on its own goroutine and waits
// for all of them to return, for tests that need several pulls in flight
// at once (e.g. racing Dup/Fork branches against each other).
func DoConcurrently(ff ...func()) {
	var wg sync.WaitGroup

	for _, f := range ff {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	wg.Wait()
}
