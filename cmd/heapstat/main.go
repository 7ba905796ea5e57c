// Command heapstat drives a heap.Heap through a small scripted workload and
// prints an occupancy summary. It exists to exercise the engine end to end;
// it is not the libc-shim adapter spec.md calls out of scope.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
