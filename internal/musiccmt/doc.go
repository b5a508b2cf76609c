// Package musiccmt parses music room comment files into per-track titles
// and comments.
//
// Comment files ship inside the game archives, usually Shift-JIS encoded:
//
//	enc, _ := musiccmt.EncodingByName("shift_jis")
//	table, err := musiccmt.ParseFile("musiccmt.txt", musiccmt.WithEncoding(enc))
//	for id, rec := range table.All() {
//	    fmt.Println(id, rec.Title)
//	}
package musiccmt
