package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goAdmit "github.com/MrEthical07/goAdmit"
	"github.com/MrEthical07/goAdmit/identity"
	"github.com/MrEthical07/goAdmit/store"
)

func main() {
	var (
		aclPath     = flag.String("acl", "", "path to an ACL document JSON file (required)")
		lintOnly    = flag.Bool("lint", false, "validate the document and exit without checking identities")
		rejectNull  = flag.Bool("reject-null-identity", false, "reject connections presenting no identity")
		rejectNoACL = flag.Bool("reject-without-acl", false, "reject all connections while the permission index is empty")
		forceShadow = flag.Bool("force-shadow", false, "force shadow mode regardless of the document's shadow flag")
		showMetrics = flag.Bool("metrics", false, "print engine counters after the checks")
	)
	flag.Parse()

	if *aclPath == "" {
		fmt.Fprintln(os.Stderr, "usage: goadmit-aclcheck -acl FILE [flags] IDENTITY...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(*aclPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *aclPath, err)
		os.Exit(1)
	}

	doc, err := goAdmit.DecodeDocument(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "document invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("document ok: %d rule(s), shadow=%v\n", len(doc.Rules), doc.Shadow)

	if *lintOnly {
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no identities given; pass raw identity strings like user:alice,svc:billing")
		os.Exit(2)
	}

	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
		os.Exit(1)
	}
	defer mr.Close()

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	defer func() { _ = client.Close() }()

	cfg := goAdmit.Config{
		Policy: goAdmit.PolicyConfig{
			RejectNullIdentity:         *rejectNull,
			RejectWithoutACLDefinition: *rejectNoACL,
			ForceShadowMode:            *forceShadow,
		},
		Refresh: goAdmit.RefreshConfig{
			Path:     "/zookeeper/auth/acls",
			Interval: time.Minute,
		},
		Metrics: goAdmit.MetricsConfig{Enabled: true},
	}

	if err := client.Set(ctx, cfg.Refresh.Path, data, 0).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "seed document: %v\n", err)
		os.Exit(1)
	}

	engine, err := goAdmit.New().
		WithConfig(cfg).
		WithStore(store.NewRedis(client)).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	exitCode := 0
	for _, raw := range flag.Args() {
		ids := identity.Parse(raw)
		result := engine.CheckConnectPermission(ids)

		verdict := "REJECT"
		if result.IsAccepted() {
			verdict = "ACCEPT"
		}
		detail := "no match"
		switch {
		case result.AuthorizedIdentity != nil:
			detail = "matched " + result.AuthorizedIdentity.String()
		case result.Authorized:
			detail = "policy default"
		}
		fmt.Printf("%s  %q  authorized=%v shadow=%v admin=%v  (%s)\n",
			verdict, raw, result.Authorized, result.Shadow, engine.IsAdmin(ids), detail)

		if !result.IsAccepted() {
			exitCode = 1
		}
	}

	if *showMetrics {
		snapshot := engine.MetricsSnapshot()
		fmt.Println("---- counters ----")
		for _, entry := range []struct {
			name string
			id   goAdmit.MetricID
		}{
			{"connection_authorized", goAdmit.MetricConnectionAuthorized},
			{"connection_unauthorized", goAdmit.MetricConnectionUnauthorized},
			{"connection_authorized_shadow", goAdmit.MetricConnectionAuthorizedShadow},
			{"connection_unauthorized_shadow", goAdmit.MetricConnectionUnauthorizedShadow},
			{"policy_applied", goAdmit.MetricPolicyApplied},
		} {
			fmt.Printf("%s=%d\n", entry.name, snapshot.Counters[entry.id])
		}
	}

	os.Exit(exitCode)
}
