package example

import (
	"errors"
	"fmt"
)

// Counter counts down towards a target value.
type Counter struct {
	value  int
	target int
}

func NewCounter(value, target int) *Counter {
	return &Counter{value: value, target: target}
}

// Value returns the current count.
func (c *Counter) Value() int {
	return c.value
}

// Count down until the target number.
//
//errctx:context
func (c *Counter) Count() error {
	__errctx_body := func() error {
		if c.value < c.target {
			return errors.New("target is greater than current count")
		}
		for c.value > c.target {
			c.value--
		}
		return nil
	}
	__errctx_err := __errctx_body()
	if __errctx_err != nil {
		return fmt.Errorf("Count down until the target number: %w", __errctx_err)
	}
	return nil
}
