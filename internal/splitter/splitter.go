package splitter

import (
	"strings"
	"unicode/utf8"

	"docsearch/internal/domain"
)

// CharacterSplitter splits page text on a separator and packs the resulting
// segments into passages of at most chunkSize characters, carrying up to
// overlap trailing characters into the next passage of the same page.
// Passages never span pages.
type CharacterSplitter struct {
	chunkSize int
	overlap   int
	separator string
}

func NewCharacterSplitter(chunkSize, overlap int, separator string) *CharacterSplitter {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	if separator == "" {
		separator = "\n"
	}
	return &CharacterSplitter{chunkSize: chunkSize, overlap: overlap, separator: separator}
}

func (s *CharacterSplitter) Split(pages []domain.Page) []domain.Passage {
	var passages []domain.Passage
	for _, p := range pages {
		for _, text := range s.splitText(p.Text) {
			passages = append(passages, domain.Passage{Text: text, Source: p.Source, Page: p.Page})
		}
	}
	return passages
}

func (s *CharacterSplitter) splitText(text string) []string {
	var segments []string
	for _, seg := range strings.Split(text, s.separator) {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	var out []string
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, strings.Join(cur, s.separator))
		// Carry trailing segments into the next passage up to the
		// overlap budget.
		var tail []string
		length := 0
		for i := len(cur) - 1; i >= 0; i-- {
			l := utf8.RuneCountInString(cur[i])
			if len(tail) > 0 {
				l += utf8.RuneCountInString(s.separator)
			}
			if length+l > s.overlap {
				break
			}
			tail = append([]string{cur[i]}, tail...)
			length += l
		}
		cur = tail
	}

	for _, seg := range segments {
		if utf8.RuneCountInString(seg) > s.chunkSize {
			flush()
			cur = nil
			out = append(out, wrapRunes(seg, s.chunkSize, s.overlap)...)
			continue
		}
		if len(cur) > 0 && s.joinedLen(cur)+utf8.RuneCountInString(s.separator)+utf8.RuneCountInString(seg) > s.chunkSize {
			flush()
			// Drop the carried overlap when it would push the next
			// passage over the size limit.
			if len(cur) > 0 && s.joinedLen(cur)+utf8.RuneCountInString(s.separator)+utf8.RuneCountInString(seg) > s.chunkSize {
				cur = nil
			}
		}
		cur = append(cur, seg)
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, s.separator))
	}
	return out
}

func (s *CharacterSplitter) joinedLen(segments []string) int {
	n := 0
	for i, seg := range segments {
		if i > 0 {
			n += utf8.RuneCountInString(s.separator)
		}
		n += utf8.RuneCountInString(seg)
	}
	return n
}

// wrapRunes hard-splits a single oversized segment into rune windows.
func wrapRunes(text string, size, overlap int) []string {
	runes := []rune(text)
	step := size - overlap
	if step <= 0 {
		step = size
	}
	var out []string
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[i:end]))
		if part != "" {
			out = append(out, part)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
