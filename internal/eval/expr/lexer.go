package expr

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tokenize scans src into tokens in source order.
// It fails on the first unrecognized character or malformed variable
// reference; no tokens are returned on failure.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	i, n := 0, len(src)

	for i < n {
		ch := src[i]

		switch {
		case ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(src[i:])
			if !unicode.IsSpace(r) {
				return nil, syntaxErrorf(i, "unexpected character %q", r)
			}
			i += size

		case isSpace(ch):
			i++

		case ch == '{':
			tok, next, err := scanVar(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isDigit(ch) || ch == '.':
			tok, next, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case ch == '&' || ch == '|':
			if i+1 >= n || src[i+1] != ch {
				return nil, syntaxErrorf(i, "unexpected character %q (did you mean %q?)", ch, string([]byte{ch, ch}))
			}
			kind := AND
			if ch == '|' {
				kind = OR
			}
			tokens = append(tokens, Token{Kind: kind, Op: src[i : i+2], Pos: i})
			i += 2

		case ch == '>' || ch == '<' || ch == '=' || ch == '!':
			if i+1 < n && src[i+1] == '=' {
				tokens = append(tokens, Token{Kind: CMP, Op: src[i : i+2], Pos: i})
				i += 2
				continue
			}
			switch ch {
			case '=':
				return nil, syntaxErrorf(i, "unexpected character '=' (did you mean \"==\"?)")
			case '!':
				tokens = append(tokens, Token{Kind: OP, Op: "!", Pos: i})
			default:
				tokens = append(tokens, Token{Kind: CMP, Op: string(ch), Pos: i})
			}
			i++

		case isOperator(ch):
			tokens = append(tokens, Token{Kind: OP, Op: string(ch), Pos: i})
			i++

		default:
			return nil, syntaxErrorf(i, "unexpected character %q", ch)
		}
	}

	return tokens, nil
}

// scanVar scans a {N} reference starting at the opening brace.
func scanVar(src string, start int) (Token, int, error) {
	j := start + 1
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	if j == start+1 {
		return Token{}, 0, syntaxErrorf(start, "bad variable reference: expected digits after '{'")
	}
	if j >= len(src) || src[j] != '}' {
		return Token{}, 0, syntaxErrorf(start, "bad variable reference: missing '}'")
	}

	idx, err := strconv.Atoi(src[start+1 : j])
	if err != nil {
		return Token{}, 0, syntaxErrorf(start, "bad variable reference %q: index out of range", src[start:j+1])
	}

	return Token{Kind: VAR, Index: idx, Pos: start}, j + 1, nil
}

// scanNumber consumes the longest run of digits and dots.
// Exponents and signs are not part of a literal.
func scanNumber(src string, start int) (Token, int, error) {
	j := start + 1
	for j < len(src) && (isDigit(src[j]) || src[j] == '.') {
		j++
	}

	lit := src[start:j]
	f, err := strconv.ParseFloat(lit, 64)
	// Literals too large for float64 become +Inf.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, 0, syntaxErrorf(start, "bad number %q", lit)
	}

	return Token{Kind: NUM, Num: f, Pos: start}, j, nil
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isOperator(ch byte) bool {
	switch ch {
	case '(', ')', '+', '-', '*', '/', '%':
		return true
	}
	return false
}
