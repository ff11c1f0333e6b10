package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent  // TIME, vec3, my_var
	TokenInt    // 42
	TokenFloat  // 4.2
	TokenBool   // true, false
	TokenString // "res://a.gdshaderinc"

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenShl       // <<
	TokenShr       // >>
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=
	TokenShlAssign     // <<=
	TokenShrAssign     // >>=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenHash      // #
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIllegal:       "ILLEGAL",
	TokenIdent:         "IDENT",
	TokenInt:           "INT",
	TokenFloat:         "FLOAT",
	TokenBool:          "BOOL",
	TokenString:        "STRING",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenAmpersand:     "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenHash:          "#",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsPunctuation reports whether t is an operator or delimiter.
func (t TokenType) IsPunctuation() bool {
	return t >= TokenPlus && t <= TokenHash
}

// Comment is a comment trivia span. Text includes the delimiters.
type Comment struct {
	Text string
	Pos  int
	End  int
	Line int
}

// Token represents a lexical token. Pos and End are byte offsets into the
// input, End exclusive.
type Token struct {
	Type     TokenType
	Literal  string
	Pos      int
	End      int
	Line     int
	Column   int
	Comments []Comment // comments between the previous token and this one
}

// punctuators maps operator spellings to token types, longest first when
// looked up by the lexer.
var punctuators = map[string]TokenType{
	"<<=": TokenShlAssign,
	">>=": TokenShrAssign,
	"==":  TokenEq,
	"!=":  TokenNe,
	"<=":  TokenLe,
	">=":  TokenGe,
	"&&":  TokenAnd,
	"||":  TokenOr,
	"<<":  TokenShl,
	">>":  TokenShr,
	"+=":  TokenPlusAssign,
	"-=":  TokenMinusAssign,
	"*=":  TokenStarAssign,
	"/=":  TokenSlashAssign,
	"%=":  TokenPercentAssign,
	"&=":  TokenAndAssign,
	"|=":  TokenOrAssign,
	"^=":  TokenXorAssign,
	"++":  TokenIncrement,
	"--":  TokenDecrement,
	"+":   TokenPlus,
	"-":   TokenMinus,
	"*":   TokenStar,
	"/":   TokenSlash,
	"%":   TokenPercent,
	"=":   TokenAssign,
	"<":   TokenLt,
	">":   TokenGt,
	"!":   TokenNot,
	"&":   TokenAmpersand,
	"|":   TokenPipe,
	"^":   TokenCaret,
	"~":   TokenTilde,
	"?":   TokenQuestion,
	":":   TokenColon,
	"(":   TokenLParen,
	")":   TokenRParen,
	"{":   TokenLBrace,
	"}":   TokenRBrace,
	"[":   TokenLBracket,
	"]":   TokenRBracket,
	";":   TokenSemicolon,
	",":   TokenComma,
	".":   TokenDot,
	"#":   TokenHash,
}

// LookupWord returns the token type for an identifier-shaped word. Only the
// boolean literals are distinguished; every other word, keyword or not, is
// an IDENT and is classified later by the parser.
func LookupWord(word string) TokenType {
	if word == "true" || word == "false" {
		return TokenBool
	}
	return TokenIdent
}
