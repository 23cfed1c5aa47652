// Package term provides the small closed set of logical term values used by
// the certificate-chain fact schema: atoms, strings, integers, booleans, and
// function applications, plus the Rule/Fact it is built from.
package term

import "fmt"

// Term is the abstract logical value the fact schema is built from.
type Term interface {
	isTerm()
	String() string
}

// Atom is a short bare symbol, e.g. Atom("none"), Atom("serverAuth").
type Atom string

func (Atom) isTerm() {}

func (a Atom) String() string {
	return string(a)
}

// Str is a string literal term.
type Str string

func (Str) isTerm() {}

func (s Str) String() string {
	return fmt.Sprintf("%q", string(s))
}

// Int is a signed 64-bit integer term.
type Int int64

func (Int) isTerm() {}

func (i Int) String() string {
	return fmt.Sprintf("%d", int64(i))
}

// Bool is a boolean term.
type Bool bool

func (Bool) isTerm() {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// App is a function application: a functor name applied to an ordered list
// of argument terms. A Rule/Fact is itself represented as an App whose
// functor is the predicate name.
type App struct {
	Functor string
	Args    []Term
}

func (App) isTerm() {}

func (a App) String() string {
	s := a.Functor + "("
	for i, arg := range a.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ")"
}

// Rule is a fact with no body: App(predicate-name, args). The output of the
// core is an ordered sequence of Rules.
type Rule = App

// Cert constructs the canonical cert(i) sub-term referring to the
// certificate at index i.
func Cert(i int64) Term {
	return App{Functor: "cert", Args: []Term{Int(i)}}
}

// Fact builds a ground fact App(name, args) — a Rule with no body.
func Fact(name string, args ...Term) Rule {
	return Rule{Functor: name, Args: args}
}
