package example

import (
	"fmt"
	"os"
)

// Read the address book.
//
//errctx:context
func ReadAddressBook(path string) ([]byte, error) {
	__errctx_body := func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	__errctx_r0, __errctx_err := __errctx_body()
	if __errctx_err != nil {
		return __errctx_r0, fmt.Errorf("Read the address book: %w", __errctx_err)
	}
	return __errctx_r0, nil
}

//errctx:context fn
func ReadAddressByName(path string) ([]byte, error) {
	__errctx_body := func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	__errctx_r0, __errctx_err := __errctx_body()
	if __errctx_err != nil {
		return __errctx_r0, fmt.Errorf("call ReadAddressByName fail: %w", __errctx_err)
	}
	return __errctx_r0, nil
}

//errctx:context msg:"read the address book"
func ReadAddressCustom(path string) ([]byte, error) {
	__errctx_body := func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	__errctx_r0, __errctx_err := __errctx_body()
	if __errctx_err != nil {
		return __errctx_r0, fmt.Errorf("read the address book: %w", __errctx_err)
	}
	return __errctx_r0, nil
}
