// Package chainquery is the orchestrator: given a Query (candidate chain,
// trust anchors, domain, reference time) it produces the deterministic,
// ordered fact sequence the downstream policy evaluator consumes. It is a
// pure, single-threaded, synchronous function — no I/O, no retries, no
// shared mutable state; callers may run independent Querys in parallel on
// disjoint inputs.
package chainquery

import (
	"math"

	"github.com/go-phorce/chainfacts/certfacts"
	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/term"
	"github.com/juju/errors"
)

// Query is the input contract: chain[0] is the leaf, chain[i+1] is the
// purported issuer of chain[i]. now is seconds since the UNIX epoch.
// domain is opaque to this package — validated verbatim, never canonicalized.
type Query struct {
	Roots  []*certmodel.Certificate
	Chain  []*certmodel.Certificate
	Domain string
	Now    int64
}

// ErrIntegerOverflow is the one error kind the core raises: chain.len() or
// chain.len()+roots.len() would exceed int64's range. On real inputs this
// is unreachable (Go slice lengths already fit in int64), but the
// precondition is checked explicitly to preserve the contract.
var ErrIntegerOverflow = errors.New("chainquery: index space exceeds int64 range")

func checkChainLen(chainLen int) error {
	if int64(chainLen) < 0 || int64(chainLen) > math.MaxInt64 {
		return errors.Trace(ErrIntegerOverflow)
	}
	return nil
}

func checkTotalLen(chainLen, rootsLen int) error {
	if err := checkChainLen(chainLen); err != nil {
		return err
	}
	total := int64(chainLen) + int64(rootsLen)
	if total < int64(chainLen) || total < int64(rootsLen) {
		return errors.Trace(ErrIntegerOverflow)
	}
	return nil
}

// ChainFacts is C6: emits, for i from 0 to len(chain)-1, an issuer edge
// when chain[i] likely-issued-and-signed chain[i-1] (i>0 only), followed by
// chain[i]'s full per-certificate fact block. It then emits envDomain —
// duplicating EnvFacts's emission later in QueryFacts, preserved verbatim
// as an observed quirk of the source this was distilled from (see DESIGN.md).
func ChainFacts(q Query) ([]term.Rule, error) {
	if err := checkChainLen(len(q.Chain)); err != nil {
		return nil, err
	}

	var rules []term.Rule
	for i, cert := range q.Chain {
		if i > 0 {
			issuer, subject := cert, q.Chain[i-1]
			if certmodel.LikelyIssued(issuer, subject) && certmodel.VerifySignature(issuer, subject) {
				rules = append(rules, term.Fact("issuer", term.Cert(int64(i-1)), term.Cert(int64(i))))
			}
		}
		rules = append(rules, certfacts.Certificate(int64(i), cert)...)
	}
	rules = append(rules, term.Fact("envDomain", term.Str(q.Domain)))
	return rules, nil
}

// RootFacts is C7: for each root, in order, checks whether it issued any
// chain certificate; a root with no such edge ("unused") contributes no
// facts at all, not even its self-edge or basic facts.
func RootFacts(q Query) ([]term.Rule, error) {
	if err := checkTotalLen(len(q.Chain), len(q.Roots)); err != nil {
		return nil, err
	}

	chainLen := int64(len(q.Chain))
	var rules []term.Rule
	for i, root := range q.Roots {
		rootIdx := chainLen + int64(i)
		used := false
		for j, cert := range q.Chain {
			if certmodel.LikelyIssued(root, cert) && certmodel.VerifySignature(root, cert) {
				used = true
				rules = append(rules, term.Fact("issuer", term.Cert(int64(j)), term.Cert(rootIdx)))
			}
		}
		if !used {
			continue
		}
		rules = append(rules, term.Fact("issuer", term.Cert(rootIdx), term.Cert(rootIdx)))
		rules = append(rules, certfacts.Certificate(rootIdx, root)...)
	}
	return rules, nil
}

// EnvFacts is C8: envDomain, then envNow, unconditionally.
func EnvFacts(q Query) []term.Rule {
	return []term.Rule{
		term.Fact("envDomain", term.Str(q.Domain)),
		term.Fact("envNow", term.Int(q.Now)),
	}
}

// QueryFacts is C9, the orchestrator: runs ChainFacts, then RootFacts, then
// EnvFacts, appending to one buffer. The first error aborts the whole
// query; the caller must discard whatever was built so far.
func QueryFacts(q Query) ([]term.Rule, error) {
	var rules []term.Rule

	chainRules, err := ChainFacts(q)
	if err != nil {
		return nil, errors.Trace(err)
	}
	rules = append(rules, chainRules...)

	rootRules, err := RootFacts(q)
	if err != nil {
		return nil, errors.Trace(err)
	}
	rules = append(rules, rootRules...)

	rules = append(rules, EnvFacts(q)...)
	return rules, nil
}
