package chat

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// CountTokens tokenizes with cl100k_base for observability. The coarse
// ceil(len/4) figure from the assembler remains the reported estimate;
// returns -1 when the tokenizer is unavailable.
func CountTokens(text string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		tk = enc
	})

	if tk == nil {
		return -1
	}
	return len(tk.Encode(text, nil, nil))
}
