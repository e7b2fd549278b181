// Package lang implements the lime language: lexer, parser, and a
// call-by-need interpreter. The only primitive is the curried
// single-parameter lambda; everything else (numbers, strings, lists, the
// unit value none, and the native builtins) is a value it can close over.
//
// # Grammar
//
// Source is line-oriented: one statement per physical line, with `;`
// starting a comment that runs to end of line.
//
// Informal EBNF:
//
//	Statement  → Identifier ':=' Expr | Expr
//	Expr       → Atom+                      (left-associative application)
//	Atom       → Identifier | Number | String
//	           | '(' Expr ')' | '(' ')'    (grouping, none literal)
//	           | '[' (Expr (',' Expr)*)? ']'
//	           | '\' Identifier? '.' Expr  (lambda, body extends right)
//
// Multi-parameter functions are written as nested lambdas and applied by
// juxtaposition, one argument at a time:
//
//	const := \a.\b.a
//	const 5 4
//
// # Evaluation
//
// Application is call-by-need: an argument expression is suspended as a
// thunk over the caller's environment and evaluated only when the callee
// first demands it, with the result memoized per thunk. The comparison
// builtins exploit this to act as lazy conditionals:
//
//	= 0 n "zero" (str (/ 1 n))
//
// forces only the branch it selects, so the division never runs when n is
// zero. Recursion needs no special form; a function can receive itself as
// an argument:
//
//	fact := \f.\n.= n 0 1 (* n (f f (- n 1)))
//	fact fact 5
//
// # Errors
//
// All failures surface as *Error values carrying the source position in
// the form "at (ln: N, col: M)" plus structured logging attributes.
// Sentinels such as ErrUnboundIdentifier and ErrDivisionByZero match with
// errors.Is.
package lang
