// Package lisp provides the public API for the interpreter.
package lisp

// DefaultPrelude contains a handful of helper bindings loaded automatically
// unless WithNoPrelude is given. Every closure here is fixed-arity: lambda
// has no variadic parameter lists, so helpers like list construction come
// in fixed arities (list2, list3) rather than one general `list`.
const DefaultPrelude = `
(set 'not (lambda (x) (cond (x '()) (t t))))
(set 'and2 (lambda (a b) (cond (a b) (t '()))))
(set 'or2 (lambda (a b) (cond (a a) (t b))))
(set 'second (lambda (l) (car (cdr l))))
(set 'third (lambda (l) (car (cdr (cdr l)))))
(set 'list2 (lambda (a b) (cons a (cons b '()))))
(set 'list3 (lambda (a b c) (cons a (cons b (cons c '())))))
(set 'compose2 (lambda (f g) (lambda (x) (f (g x)))))
`
