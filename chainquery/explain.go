package chainquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-phorce/chainfacts/certmodel"
)

// Explain renders a human-readable debug dump of a Query: which chain
// certs issued which, which roots were used, and each cert's headline
// fields. It is a pure function returning a string rather than writing to
// stderr — grounded on the original print_debug_info, reworked so callers
// choose where the text goes instead of it going straight to a stream.
func Explain(q Query) string {
	var b strings.Builder

	fmt.Fprintln(&b, "=================== query info ===================")
	fmt.Fprintf(&b, "%d root certificate(s)\n", len(q.Roots))
	fmt.Fprintf(&b, "%d certificate(s) in the chain\n", len(q.Chain))

	for i := 0; i+1 < len(q.Chain); i++ {
		issuer, subject := q.Chain[i+1], q.Chain[i]
		if !certmodel.LikelyIssued(issuer, subject) {
			continue
		}
		if certmodel.VerifySignature(issuer, subject) {
			fmt.Fprintf(&b, "cert %d issued cert %d\n", i+1, i)
		} else {
			fmt.Fprintf(&b, "cert %d issued cert %d (but signature error)\n", i+1, i)
		}
	}

	var usedRoots []int
	for i, root := range q.Roots {
		used := false
		for j, cert := range q.Chain {
			if !certmodel.LikelyIssued(root, cert) {
				continue
			}
			used = true
			if certmodel.VerifySignature(root, cert) {
				fmt.Fprintf(&b, "root cert %d issued cert %d\n", i, j)
			} else {
				fmt.Fprintf(&b, "root cert %d issued cert %d (but signature error)\n", i, j)
			}
		}
		if used {
			usedRoots = append(usedRoots, i)
		}
	}

	printCert := func(cert *certmodel.Certificate) {
		raw := cert.Raw()
		fmt.Fprintf(&b, "  subject: %s\n", raw.Subject.String())
		fmt.Fprintf(&b, "  issued by: %s\n", raw.Issuer.String())
		fmt.Fprintf(&b, "  signed with: %s\n", raw.SignatureAlgorithm.String())
		fmt.Fprintf(&b, "  subject key: %s\n", raw.PublicKeyAlgorithm.String())
	}

	for i, cert := range q.Chain {
		fmt.Fprintf(&b, "cert %d:\n", i)
		printCert(cert)
	}
	for _, i := range usedRoots {
		fmt.Fprintf(&b, "root cert %d:\n", i)
		printCert(q.Roots[i])
	}

	fmt.Fprintf(&b, "domain to validate: %s\n", q.Domain)
	fmt.Fprintf(&b, "timestamp: %d (%s)\n", q.Now, time.Unix(q.Now, 0).UTC().Format(time.RFC3339))
	fmt.Fprintln(&b, "=================== end query info ===================")

	return b.String()
}
