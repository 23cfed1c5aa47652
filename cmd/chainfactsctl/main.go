// Command chainfactsctl evaluates certificate chains into their fact
// sequence, either as a one-shot CLI command or as the backing process for
// the facts HTTP service. Grounded on cmd/dollypki/main.go's kingpin
// command-tree shape, simplified: this CLI has no HSM/crypto-provider
// concept, so it talks to kingpin directly instead of through ctl.Application.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cloudflare/cfssl/helpers"
	"github.com/go-phorce/chainfacts/certmodel"
	"github.com/go-phorce/chainfacts/chainquery"
	"github.com/go-phorce/chainfacts/config"
	"github.com/go-phorce/chainfacts/internal/httpapi"
	"github.com/go-phorce/chainfacts/metrics"
	"github.com/go-phorce/chainfacts/rest"
	"github.com/go-phorce/chainfacts/xlog"
	"github.com/go-phorce/chainfacts/xlog/logrotate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kp "gopkg.in/alecthomas/kingpin.v2"
)

var logger = xlog.NewPackageLogger("github.com/go-phorce/chainfacts/cmd", "chainfactsctl")

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout))
}

func realMain(args []string, out io.Writer) int {
	app := kp.New("chainfactsctl", "evaluate certificate chains into their fact sequence")
	app.UsageWriter(out)
	app.Terminate(func(int) {})

	cmdFacts := app.Command("facts", "print the fact sequence for a chain")
	chainFiles := cmdFacts.Flag("chain", "leaf-first chain of PEM certificate files").Required().Strings()
	rootFiles := cmdFacts.Flag("roots", "PEM trust-anchor files").Strings()
	domain := cmdFacts.Flag("domain", "domain name being validated").Required().String()
	now := cmdFacts.Flag("now", "reference time, unix seconds (default: current time)").Int64()
	explain := cmdFacts.Flag("explain", "also print a human-readable debug dump").Bool()

	cmdServe := app.Command("serve", "run the facts HTTP service")
	cfgPath := cmdServe.Flag("config", "path to a JSON/YAML config file").String()
	listenAddr := cmdServe.Flag("listen", "address to listen on").String()

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}

	switch cmd {
	case cmdFacts.FullCommand():
		return runFacts(out, *chainFiles, *rootFiles, *domain, *now, *explain)
	case cmdServe.FullCommand():
		return runServe(out, *cfgPath, *listenAddr)
	}
	return 1
}

func runFacts(out io.Writer, chainFiles, rootFiles []string, domain string, now int64, explain bool) int {
	chain, err := loadCertificates(chainFiles)
	if err != nil {
		fmt.Fprintf(out, "error: unable to load chain: %v\n", err)
		return 1
	}
	roots, err := loadCertificates(rootFiles)
	if err != nil {
		fmt.Fprintf(out, "error: unable to load roots: %v\n", err)
		return 1
	}
	if now == 0 {
		now = time.Now().UTC().Unix()
	}

	q := chainquery.Query{Chain: chain, Roots: roots, Domain: domain, Now: now}

	if explain {
		fmt.Fprintln(out, chainquery.Explain(q))
	}

	rules, err := chainquery.QueryFacts(q)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}
	for _, r := range rules {
		fmt.Fprintln(out, r.String())
	}
	return 0
}

func runServe(out io.Writer, cfgPath, listenOverride string) int {
	cfg := &config.Config{ListenAddr: ":8443"}
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Fprintf(out, "error: unable to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if listenOverride != "" {
		cfg.ListenAddr = listenOverride
	}

	if cfg.Logging != nil {
		closer, err := logrotate.Initialize(cfg.Logging.Directory, "chainfactsctl",
			cfg.Logging.MaxAgeDays, cfg.Logging.MaxSizeMB, true, nil)
		if err != nil {
			fmt.Fprintf(out, "error: unable to start log rotation: %v\n", err)
			return 1
		}
		defer closer.Close()
	}

	sink, err := metrics.NewPrometheusSink()
	if err != nil {
		fmt.Fprintf(out, "error: unable to create metrics sink: %v\n", err)
		return 1
	}
	if _, err := metrics.NewGlobal(metrics.DefaultConfig("chainfacts"), sink); err != nil {
		fmt.Fprintf(out, "error: unable to start metrics: %v\n", err)
		return 1
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httpapi.NewServeMux(&rest.CORSOptions{AllowedOrigins: []string{"*"}}))

	logger.Infof("reason=listening, address=%s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}
	return 0
}

func loadCertificates(paths []string) ([]*certmodel.Certificate, error) {
	certs := make([]*certmodel.Certificate, 0, len(paths))
	for _, path := range paths {
		pemBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		parsed, err := helpers.ParseCertificatesPEM(pemBytes)
		if err != nil {
			return nil, err
		}
		for _, c := range parsed {
			certs = append(certs, certmodel.NewCertificate(c))
		}
	}
	return certs, nil
}
