// Package engine executes rewritten table-store queries against parquet
// files.
//
// It implements a deliberately small SQL subset: SELECT * over a single
// read_parquet glob expression, with WHERE comparisons combined via AND/OR
// and an optional LIMIT. The package includes a lexer for tokenization, a
// parser for building ASTs, and an evaluator for filtering data rows.
// Queries outside the subset fail with a descriptive error; callers needing
// a full SQL dialect plug their own executor into the store instead.
//
// Example usage:
//
//	rows, err := engine.Execute(ctx, "select * from read_parquet('/db/trades/**/*.parquet') where price > 30")
package engine

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenLimit

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Punctuation
	TokenLParen // (
	TokenRParen // )

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Query represents a parsed query
type Query struct {
	// Source is the location rows are read from: the glob inside a
	// read_parquet(...) term, or a bare file path.
	Source string
	Filter Expression
	// Limit caps the number of returned rows; 0 means unlimited.
	Limit int
}

// Expression represents a boolean expression in the WHERE clause
type Expression interface {
	Evaluate(row map[string]interface{}) (bool, error)
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Column   string
	Operator TokenType
	Value    interface{}
}

// Evaluate evaluates a binary expression
func (b *BinaryExpr) Evaluate(row map[string]interface{}) (bool, error) {
	left, err := b.Left.Evaluate(row)
	if err != nil {
		return false, err
	}

	right, err := b.Right.Evaluate(row)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case TokenAnd:
		return left && right, nil
	case TokenOr:
		return left || right, nil
	default:
		return false, nil
	}
}

// Evaluate evaluates a comparison expression
func (c *ComparisonExpr) Evaluate(row map[string]interface{}) (bool, error) {
	value, exists := row[c.Column]
	if !exists {
		return false, nil
	}

	return compare(value, c.Operator, c.Value)
}
