package cases

import stdfmt "fmt"

// Parse the manifest size.
//
//errctx:context
func ParseSize(raw string) (int, error) {
	var size int
	if _, err := stdfmt.Sscanf(raw, "%d", &size); err != nil {
		return 0, err
	}
	return size, nil
}
