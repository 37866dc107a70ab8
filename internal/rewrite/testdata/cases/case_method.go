package cases

import "errors"

type Counter struct {
	value  int
	target int
}

// Count down until the target number.
//
//errctx:context
func (c *Counter) Count() error {
	if c.value < c.target {
		return errors.New("target is greater than current count")
	}
	for c.value > c.target {
		c.value--
	}
	return nil
}
