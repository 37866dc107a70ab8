package cases

import (
	"fmt"
	"os"
)

// Read the address book from disk.
//
//errctx:context doc
func ReadAddressBook(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read %s: %w", path, err)
		return
	}
	return
}
