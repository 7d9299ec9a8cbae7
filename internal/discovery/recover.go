package discovery

import "fmt"

func errFromRecover(rec any) error {
	if err, ok := rec.(error); ok {
		return fmt.Errorf("discv5 lookup panic: %w", err)
	}
	return fmt.Errorf("discv5 lookup panic: %v", rec)
}
