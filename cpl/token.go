package cpl

import "strconv"

// TokenKind discriminates the four CPL tokens.
type TokenKind byte

const (
	// TokOpen is an opening parenthesis.
	TokOpen = TokenKind(iota)
	// TokClose is a closing parenthesis.
	TokClose
	// TokName is a name: a maximal run of characters that are
	// neither whitespace, parentheses nor comment starts.
	TokName
	// TokNumber is a run of decimal digits standing alone.
	TokNumber
)

// A Token is one lexical element of a CPL source, with its position
// for diagnostics.
type Token struct {
	Kind TokenKind
	Name string
	Num  int
	Pos  Pos
}

// Tokenize splits src into tokens. Space and tab are whitespace, a
// newline advances the line counter, and a '%' starts a comment that
// extends to the end of the line. A maximal run of non-delimiter
// characters is a number when it consists of digits only, a name
// otherwise; this is why "a_1" is a single name while "1 )" yields
// the number 1.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	runes := []rune(src)
	line, col := 1, 1
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '\n':
			line++
			col = 1
			i++
		case ' ', '\t', '\r':
			col++
			i++
		case '%':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case '(':
			toks = append(toks, Token{Kind: TokOpen, Pos: Pos{line, col}})
			col++
			i++
		case ')':
			toks = append(toks, Token{Kind: TokClose, Pos: Pos{line, col}})
			col++
			i++
		default:
			start := i
			pos := Pos{line, col}
			digits := true
			for i < len(runes) && !isDelim(runes[i]) {
				if runes[i] < '0' || runes[i] > '9' {
					digits = false
				}
				i++
				col++
			}
			word := string(runes[start:i])
			if word == "" {
				return nil, &LexicalError{Pos: pos, Msg: "empty name"}
			}
			if digits {
				n, err := strconv.Atoi(word)
				if err != nil {
					return nil, &LexicalError{Pos: pos, Msg: "invalid number " + strconv.Quote(word)}
				}
				toks = append(toks, Token{Kind: TokNumber, Num: n, Pos: pos})
			} else {
				toks = append(toks, Token{Kind: TokName, Name: word, Pos: pos})
			}
		}
	}
	return toks, nil
}

func isDelim(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '(', ')', '%':
		return true
	}
	return false
}
