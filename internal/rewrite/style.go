package rewrite

import (
	"fmt"
)

// WrapStyle describes varieties of error wrapping calls.
type WrapStyle int

const (
	WrapStyleInvalid WrapStyle = iota

	// WrapStyleErrorf takes a format string with a trailing %w verb,
	// the error goes into the argument list. fmt.Errorf is the canon.
	WrapStyleErrorf

	// WrapStyleWrap takes the error as the first argument and the message
	// as the second. github.com/pkg/errors.Wrap is the canon.
	WrapStyleWrap
)

var wrapStyleValueMap = map[WrapStyle]string{
	WrapStyleErrorf: "errorf",
	WrapStyleWrap:   "wrap",
}

func (s WrapStyle) String() string {
	v, ok := wrapStyleValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (s *WrapStyle) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range wrapStyleValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown error wrap style %q", text)
}
