// Package example holds //errctx:context annotated functions in their
// rewritten form. Edit the closure bodies, then regenerate.
package example

//go:generate go run github.com/errctx/errctx/cmd/errctx rewrite -w .

import (
	"errors"
	"fmt"
)

// Square a number if it's less than 10.
//
//errctx:context
func Square(num int) (int, error) {
	__errctx_body := func() (int, error) {
		if num >= 10 {
			return 0, errors.New("number was too large")
		}
		return num * num, nil
	}
	__errctx_r0, __errctx_err := __errctx_body()
	if __errctx_err != nil {
		return __errctx_r0, fmt.Errorf("Square a number if it's less than 10: %w", __errctx_err)
	}
	return __errctx_r0, nil
}
