// Package lexer implements the PHP tokenizer/scanner.
//
// The lexer operates over a single code region (the bytes between a
// "<?php"/"<?=" open tag and the matching "?>" or end of input, as
// identified by the source splitter) and produces a stream of Tokens with
// byte-offset spans. It is byte-oriented: only string-literal escape
// decoding is aware of UTF-8, and even there invalid sequences are passed
// through rather than rejected.
package lexer

// Lexer scans a byte buffer into tokens. base is the byte offset of
// input[0] within the original source buffer, so Spans produced by this
// Lexer are absolute offsets usable directly by the parser and AST.
type Lexer struct {
	input string
	base  int // offset of input[0] in the original source buffer
	file  string

	pos       int // current byte offset into input
	readPos   int // next byte offset to read
	ch        byte
	line      int
	column    int
	lineStart int
}

// New creates a Lexer over input, whose first byte sits at absolute offset
// base in the original source buffer.
func New(input string, base int, file string) *Lexer {
	l := &Lexer{
		input:     input,
		base:      base,
		file:      file,
		line:      1,
		column:    0,
		lineStart: 0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column = l.pos - l.lineStart
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekCharAt(offset int) byte {
	idx := l.readPos + offset - 1
	if idx >= len(l.input) || idx < 0 {
		return 0
	}
	return l.input[idx]
}

func (l *Lexer) currentPosition() Position {
	return Position{
		Filename: l.file,
		Offset:   l.base + l.pos,
		Line:     l.line,
		Column:   l.column + 1,
	}
}

func (l *Lexer) spanFrom(startOffset int) Span {
	return Span{Lo: l.base + startOffset, Hi: l.base + l.pos}
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func lowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.readChar()
			l.line++
			l.lineStart = l.pos
			l.column = 0
		case '/':
			if l.peekChar() == '/' {
				l.skipLineComment()
				continue
			}
			if l.peekChar() == '*' {
				l.skipBlockComment()
				continue
			}
			return
		case '#':
			if l.peekChar() == '[' {
				return // attribute start, not a comment
			}
			l.skipLineComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		if l.ch == '?' && l.peekChar() == '>' {
			return
		}
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // consume '/'
	l.readChar() // consume '*'
	for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
		if l.ch == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
		l.readChar()
	}
	if l.ch != 0 {
		l.readChar() // consume '*'
		l.readChar() // consume '/'
	}
}

// NextToken scans and returns the next token in the code region.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPosition()
	start := l.pos

	if l.ch == 0 {
		return Token{Type: EOF, Literal: "", Pos: pos, Span: l.spanFrom(start)}
	}

	if l.ch == '?' && l.peekChar() == '>' {
		l.readChar()
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
			l.line++
			l.lineStart = l.pos
			l.column = 0
		}
		return Token{Type: CLOSE_TAG, Literal: "?>", Pos: pos, Span: l.spanFrom(start)}
	}

	switch {
	case l.ch == '$':
		return l.scanVariable(pos, start)
	case isLetter(l.ch):
		return l.scanIdentifier(pos, start)
	case isDigit(l.ch):
		return l.scanNumber(pos, start)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.scanNumber(pos, start)
	case l.ch == '"':
		return l.scanDoubleQuoted(pos, start)
	case l.ch == '\'':
		return l.scanSingleQuoted(pos, start)
	case l.ch == '<' && l.peekChar() == '<' && l.peekCharAt(2) == '<':
		return l.scanHeredocOrNowdoc(pos, start)
	}

	return l.scanOperator(pos, start)
}

func (l *Lexer) scanVariable(pos Position, start int) Token {
	l.readChar() // consume '$'
	if !isLetter(l.ch) {
		return Token{Type: DOLLAR, Literal: "$", Pos: pos, Span: l.spanFrom(start)}
	}
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return Token{Type: VARIABLE, Literal: l.input[start:l.pos], Pos: pos, Span: l.spanFrom(start)}
}

func (l *Lexer) scanIdentifier(pos Position, start int) Token {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	return Token{Type: LookupIdent(lowerASCII(lit)), Literal: lit, Pos: pos, Span: l.spanFrom(start)}
}

func (l *Lexer) scanNumber(pos Position, start int) Token {
	isFloat := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return Token{Type: INTEGER, Literal: l.input[start:l.pos], Pos: pos, Span: l.spanFrom(start)}
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
		return Token{Type: INTEGER, Literal: l.input[start:l.pos], Pos: pos, Span: l.spanFrom(start)}
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar()
		l.readChar()
		for (l.ch >= '0' && l.ch <= '7') || l.ch == '_' {
			l.readChar()
		}
		return Token{Type: INTEGER, Literal: l.input[start:l.pos], Pos: pos, Span: l.spanFrom(start)}
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(2))) {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	tt := INTEGER
	if isFloat {
		tt = FLOAT
	}

	return Token{Type: tt, Literal: l.input[start:l.pos], Pos: pos, Span: l.spanFrom(start)}
}

// scanOperator scans punctuation and operator tokens using maximal munch:
// longest known operator first.
func (l *Lexer) scanOperator(pos Position, start int) Token {
	three := l.peekAhead(3)
	switch three {
	case "===":
		l.advance(3)
		return l.tok(IDENTICAL, three, pos, start)
	case "!==":
		l.advance(3)
		return l.tok(NOT_IDENTICAL, three, pos, start)
	case "<=>":
		l.advance(3)
		return l.tok(SPACESHIP, three, pos, start)
	case "**=":
		l.advance(3)
		return l.tok(POWER_ASSIGN, three, pos, start)
	case "<<=":
		l.advance(3)
		return l.tok(SL_ASSIGN, three, pos, start)
	case ">>=":
		l.advance(3)
		return l.tok(SR_ASSIGN, three, pos, start)
	case "??=":
		l.advance(3)
		return l.tok(COALESCE_ASSIGN, three, pos, start)
	case "...":
		l.advance(3)
		return l.tok(ELLIPSIS, three, pos, start)
	case "?->":
		l.advance(3)
		return l.tok(NULLSAFE_OPERATOR, three, pos, start)
	}

	two := l.peekAhead(2)
	switch two {
	case "<?":
		return l.scanOpenTag(pos, start)
	case "==":
		l.advance(2)
		return l.tok(EQ, two, pos, start)
	case "!=", "<>":
		l.advance(2)
		return l.tok(NE, "!=", pos, start)
	case "<=":
		l.advance(2)
		return l.tok(LE, two, pos, start)
	case ">=":
		l.advance(2)
		return l.tok(GE, two, pos, start)
	case "&&":
		l.advance(2)
		return l.tok(LOGICAL_AND, two, pos, start)
	case "||":
		l.advance(2)
		return l.tok(LOGICAL_OR, two, pos, start)
	case "++":
		l.advance(2)
		return l.tok(INC, two, pos, start)
	case "--":
		l.advance(2)
		return l.tok(DEC, two, pos, start)
	case "**":
		l.advance(2)
		return l.tok(POWER, two, pos, start)
	case "+=":
		l.advance(2)
		return l.tok(PLUS_ASSIGN, two, pos, start)
	case "-=":
		l.advance(2)
		return l.tok(MINUS_ASSIGN, two, pos, start)
	case "*=":
		l.advance(2)
		return l.tok(MUL_ASSIGN, two, pos, start)
	case "/=":
		l.advance(2)
		return l.tok(DIV_ASSIGN, two, pos, start)
	case "%=":
		l.advance(2)
		return l.tok(MOD_ASSIGN, two, pos, start)
	case ".=":
		l.advance(2)
		return l.tok(CONCAT_ASSIGN, two, pos, start)
	case "&=":
		l.advance(2)
		return l.tok(AND_ASSIGN, two, pos, start)
	case "|=":
		l.advance(2)
		return l.tok(OR_ASSIGN, two, pos, start)
	case "^=":
		l.advance(2)
		return l.tok(XOR_ASSIGN, two, pos, start)
	case "<<":
		l.advance(2)
		return l.tok(SL, two, pos, start)
	case ">>":
		l.advance(2)
		return l.tok(SR, two, pos, start)
	case "=>":
		l.advance(2)
		return l.tok(DOUBLE_ARROW, two, pos, start)
	case "->":
		l.advance(2)
		return l.tok(OBJECT_OPERATOR, two, pos, start)
	case "::":
		l.advance(2)
		return l.tok(PAAMAYIM_NEKUDOTAYIM, two, pos, start)
	case "??":
		l.advance(2)
		return l.tok(COALESCE, two, pos, start)
	case "#[":
		l.advance(2)
		return l.tok(ATTRIBUTE_START, two, pos, start)
	}

	ch := l.ch
	l.readChar()
	switch ch {
	case '+':
		return l.tok(PLUS, "+", pos, start)
	case '-':
		return l.tok(MINUS, "-", pos, start)
	case '*':
		return l.tok(ASTERISK, "*", pos, start)
	case '/':
		return l.tok(SLASH, "/", pos, start)
	case '%':
		return l.tok(PERCENT, "%", pos, start)
	case '=':
		return l.tok(ASSIGN, "=", pos, start)
	case '<':
		return l.tok(LT, "<", pos, start)
	case '>':
		return l.tok(GT, ">", pos, start)
	case '!':
		return l.tok(LOGICAL_NOT, "!", pos, start)
	case '&':
		return l.tok(BITWISE_AND, "&", pos, start)
	case '|':
		return l.tok(BITWISE_OR, "|", pos, start)
	case '^':
		return l.tok(BITWISE_XOR, "^", pos, start)
	case '~':
		return l.tok(BITWISE_NOT, "~", pos, start)
	case '.':
		return l.tok(CONCAT, ".", pos, start)
	case '?':
		return l.tok(QUESTION, "?", pos, start)
	case ':':
		return l.tok(COLON, ":", pos, start)
	case ';':
		return l.tok(SEMICOLON, ";", pos, start)
	case ',':
		return l.tok(COMMA, ",", pos, start)
	case '@':
		return l.tok(AT, "@", pos, start)
	case '`':
		return l.tok(BACKTICK, "`", pos, start)
	case '\\':
		return l.tok(NS_SEPARATOR, "\\", pos, start)
	case '(':
		return l.tok(LPAREN, "(", pos, start)
	case ')':
		return l.tok(RPAREN, ")", pos, start)
	case '{':
		return l.tok(LBRACE, "{", pos, start)
	case '}':
		return l.tok(RBRACE, "}", pos, start)
	case '[':
		return l.tok(LBRACKET, "[", pos, start)
	case ']':
		return l.tok(RBRACKET, "]", pos, start)
	}

	return l.tok(ILLEGAL, string(ch), pos, start)
}

func (l *Lexer) scanOpenTag(pos Position, start int) Token {
	if l.peekCharAt(2) == '=' {
		l.advance(3)
		return l.tok(OPEN_TAG_ECHO, "<?=", pos, start)
	}
	rest := l.peekAhead(5)
	if len(rest) == 5 && lowerASCII(rest) == "<?php" {
		l.advance(5)
		return l.tok(OPEN_TAG, "<?php", pos, start)
	}
	l.advance(2)
	return l.tok(OPEN_TAG, "<?", pos, start)
}

func (l *Lexer) peekAhead(n int) string {
	end := l.pos + n
	if end > len(l.input) {
		end = len(l.input)
	}
	if l.pos >= len(l.input) {
		return ""
	}
	return l.input[l.pos:end]
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

func (l *Lexer) tok(tt TokenType, lit string, pos Position, start int) Token {
	return Token{Type: tt, Literal: lit, Pos: pos, Span: l.spanFrom(start)}
}
