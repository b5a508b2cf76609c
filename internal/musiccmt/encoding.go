package musiccmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// EncodingByName resolves a configured encoding name. UTF-8 resolves to a
// nil encoding, which Parse treats as "no decoding".
func EncodingByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shift_jis", "shift-jis", "sjis", "cp932":
		return japanese.ShiftJIS, nil
	case "euc-jp", "euc_jp":
		return japanese.EUCJP, nil
	case "utf-8", "utf8", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
