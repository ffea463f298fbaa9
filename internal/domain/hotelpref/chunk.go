package hotelpref

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	DefaultChunkSize = 500
	DefaultChunkStep = 480
	tokenEncoding    = "cl100k_base"
)

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

// SplitText cuts text into size-rune windows starting every step runes.
// Windows overlap by size-step runes; the last one may be shorter.
func SplitText(text string, size, step int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if step <= 0 || step > size {
		step = DefaultChunkStep
		if step > size {
			step = size
		}
	}
	runes := []rune(text)
	chunks := make([]Chunk, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		body := string(runes[start:end])
		chunks = append(chunks, Chunk{
			ID:         fmt.Sprintf("pref_chunk_%d", len(chunks)+1),
			Index:      len(chunks),
			Text:       body,
			TokenCount: CountTokens(body),
		})
	}
	return chunks
}

// CountTokens uses the cl100k_base BPE when it can be loaded and falls back
// to a whitespace word count otherwise.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err == nil {
			encoder = enc
		}
	})
	if encoder != nil {
		return len(encoder.Encode(text, nil, nil))
	}
	return len(strings.Fields(text))
}
