package integrations_test

import (
	"fmt"

	"github.com/zk-kit/zk-kit-mcp/pkg/integrations"
)

func Example_errors() {
	// Standard errors for forge operations
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: resource not found
	// ErrNetwork: network error
}
