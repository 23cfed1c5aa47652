// Package httpapi is the one HTTP surface over chainquery: POST /v1/facts
// takes a chain, optional roots/domain/now, and returns the ordered fact
// sequence QueryFacts produced. Grounded on the request/response, routing,
// and error-mapping conventions in xhttp/marshal, xhttp/httperror, and
// rest.Router — adapted from dolly's generic REST scaffolding down to this
// module's single endpoint.
package httpapi

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/chainquery"
	"github.com/go-phorce/chainfacts/rest"
	"github.com/go-phorce/chainfacts/term"
	"github.com/go-phorce/chainfacts/xhttp"
	"github.com/go-phorce/chainfacts/xhttp/header"
	"github.com/go-phorce/chainfacts/xhttp/httperror"
	"github.com/go-phorce/chainfacts/xhttp/marshal"
	"github.com/go-phorce/chainfacts/xlog"
)

var logger = xlog.NewPackageLogger("github.com/go-phorce/chainfacts", "httpapi")

// FactsPath is the route this service registers its one endpoint under.
const FactsPath = "/v1/facts"

// FactsRequest is the wire shape of a POST /v1/facts body. Chain and Roots
// are base64-encoded DER certificates, leaf-first for Chain; Now defaults
// to the server's current time when zero.
type FactsRequest struct {
	Chain  []string `json:"chain"`
	Roots  []string `json:"roots,omitempty"`
	Domain string   `json:"domain"`
	Now    int64    `json:"now,omitempty"`
}

// Fact is one rule in the response's flattened fact sequence.
type Fact struct {
	Predicate string        `json:"predicate"`
	Args      []interface{} `json:"args"`
}

// FactsResponse is the wire shape of a successful POST /v1/facts response.
type FactsResponse struct {
	Facts []Fact `json:"facts"`
}

// NewServeMux builds the router for this service: one route, wrapped in
// CORS and request metrics, the way rest.NewRouterWithCORS expects.
func NewServeMux(opts *rest.CORSOptions) http.Handler {
	router := rest.NewRouterWithCORS(notFoundHandler, opts)
	router.POST(FactsPath, handleFacts)
	return xhttp.NewRequestMetrics(router.Handler())
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	httperror.WithNotFound("route not found: %s", r.URL.Path).WriteHTTPResponse(w, r)
}

func handleFacts(w http.ResponseWriter, r *http.Request, _ rest.Params) {
	var req FactsRequest
	if err := marshal.Decode(r.Body, &req); err != nil {
		httperror.WithInvalidJSON("unable to decode request body: %v", err).WriteHTTPResponse(w, r)
		return
	}

	chain, err := decodeCertificates(req.Chain)
	if err != nil {
		httperror.WithInvalidParam("invalid chain: %v", err).WriteHTTPResponse(w, r)
		return
	}
	roots, err := decodeCertificates(req.Roots)
	if err != nil {
		httperror.WithInvalidParam("invalid roots: %v", err).WriteHTTPResponse(w, r)
		return
	}

	now := req.Now
	if now == 0 {
		now = time.Now().UTC().Unix()
	}

	q := chainquery.Query{
		Chain:  chain,
		Roots:  roots,
		Domain: req.Domain,
		Now:    now,
	}

	rules, err := chainquery.QueryFacts(q)
	if err != nil {
		logger.Errorf("reason=query_facts, err=[%v]", err)
		httperror.WithUnexpected("unable to evaluate chain: %v", err).WriteHTTPResponse(w, r)
		return
	}

	resp := FactsResponse{Facts: make([]Fact, len(rules))}
	for i, rule := range rules {
		resp.Facts[i] = Fact{Predicate: rule.Functor, Args: argsToJSON(rule.Args)}
	}

	w.Header().Set(header.ContentType, header.ApplicationJSON)
	w.WriteHeader(http.StatusOK)
	if err := marshal.NewEncoder(w, r).Encode(&resp); err != nil {
		logger.Errorf("reason=encode_response, err=[%v]", err)
	}
}

// argsToJSON flattens term.Term arguments to plain JSON-friendly values;
// term.App (the cert(i) sub-term) renders as its canonical "cert(N)" string
// so the wire shape stays a flat list of scalars.
func argsToJSON(args []term.Term) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = termToJSON(a)
	}
	return out
}

func termToJSON(t term.Term) interface{} {
	switch v := t.(type) {
	case term.Atom:
		return string(v)
	case term.Str:
		return string(v)
	case term.Int:
		return int64(v)
	case term.Bool:
		return bool(v)
	case term.App:
		return v.String()
	default:
		return nil
	}
}

func decodeCertificates(ders []string) ([]*certmodel.Certificate, error) {
	certs := make([]*certmodel.Certificate, len(ders))
	for i, enc := range ders {
		der, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, err
		}
		cert, err := certmodel.ParseCertificate(der)
		if err != nil {
			return nil, err
		}
		certs[i] = cert
	}
	return certs, nil
}
