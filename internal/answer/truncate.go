package answer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer is the subset of a BPE encoder used to budget document tokens.
type Tokenizer interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// NewTiktoken returns the encoder tiktoken uses for model. The first call may download the
// BPE ranks unless TIKTOKEN_CACHE_DIR points at a populated cache.
func NewTiktoken(model string) (Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return enc, nil
}

// fit cuts content to the character budget and, when a tokenizer is set, to the token budget.
// A cut adds TruncationNotice.
func (c *Client) fit(content string) string {
	cut := false
	if runes := []rune(content); len(runes) > c.cfg.MaxContentChars {
		content = string(runes[:c.cfg.MaxContentChars])
		cut = true
	}
	if c.cfg.Tokenizer != nil && c.cfg.MaxContentTokens > 0 {
		tokens := c.cfg.Tokenizer.Encode(content, nil, nil)
		if len(tokens) > c.cfg.MaxContentTokens {
			content = c.cfg.Tokenizer.Decode(tokens[:c.cfg.MaxContentTokens])
			cut = true
		}
	}
	if cut {
		content += TruncationNotice
	}
	return content
}
