package cases

import "errors"

// Square a number if it's less than 10.
//
//errctx:context
func Square(num int) (int, error) {
	if num >= 10 {
		return 0, errors.New("number was too large")
	}
	return num * num, nil
}
