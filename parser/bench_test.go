package parser_test

import (
	"strings"
	"testing"

	"github.com/bmatsuo/lispy/parser"
)

var benchSource = strings.Repeat(`
; fold a list
(def {foldl} (\ {f z l} {
  if (== l nil)
    {z}
    {foldl f (f z (eval (head l))) (tail l)}
}))
(foldl + 0 {1 2 3 4.5 "five" sym})
`, 50)

func BenchmarkParser(b *testing.B) {
	text := []byte(benchSource)
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		_, err := parser.ParseLVal("bench", text)
		if err != nil {
			b.Fatal(err)
		}
	}
}
