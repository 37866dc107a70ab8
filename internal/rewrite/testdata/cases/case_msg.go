package cases

import (
	"fmt"
	"strconv"
)

//errctx:context msg:"parse the counter value"
func ParseCounter(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("atoi: %w", err)
	}
	return value, nil
}
