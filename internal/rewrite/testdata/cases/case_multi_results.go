package cases

import (
	"fmt"
	"strings"
)

//errctx:context msg:"split the host port pair"
func SplitHostPort(addr string) (string, string, error) {
	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		return "", "", fmt.Errorf("no colon in %q", addr)
	}
	return host, port, nil
}
