package a

import (
	"errors"
	"fmt"
	"os"
)

// Fetch a record by its key.
//
//errctx:context
func Fetch(key string) (string, error) { // want `function Fetch does not attach its error context "Fetch a record by its key"`
	if key == "" {
		return "", errors.New("empty key")
	}
	return "value of " + key, nil
}

//errctx:context doc
func NoDoc() error { // want `could not find doc for function NoDoc`
	return nil
}

// Banana does things.
//
//errctx:context banana
func Banana() error { // want `unsupported argument "banana"`
	return nil
}

// NoError computes.
//
//errctx:context
func NoError() int { // want `function NoError does not return an error as its last result`
	return 0
}

// Plain is not annotated and stays out of scope.
func Plain() error {
	return errors.New("plain")
}

//errctx:context fn
func Settled(path string) ([]byte, error) {
	__errctx_body := func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	__errctx_r0, __errctx_err := __errctx_body()
	if __errctx_err != nil {
		return __errctx_r0, fmt.Errorf("call Settled fail: %w", __errctx_err)
	}
	return __errctx_r0, nil
}
