package cases

import (
	"fmt"
	"strings"
)

//errctx:context msg:"render the usage text"
func Usage(name string) (string, error) {
	text := `usage:
  NAME rewrite [flags] paths
  NAME check paths`
	if name == "" {
		return "", fmt.Errorf("empty command name")
	}
	return strings.ReplaceAll(text, "NAME", name), nil
}
