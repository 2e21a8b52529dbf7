package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"tiendanube/pkg/config"
	"tiendanube/pkg/logger"
	"tiendanube/pkg/tiendanube"
)

const usage = `usage: nube [flags] store
       nube [flags] <resource> list
       nube [flags] <resource> get ID
       nube [flags] <resource> add FILE|-
       nube [flags] <resource> update FILE|-

resources: products customers orders categories scripts webhooks,
           variants images (with -product ID)
`

// filterFlags collects repeated -filter key=value pairs.
type filterFlags tiendanube.Filters

func (f filterFlags) String() string { return fmt.Sprint(map[string]any(f)) }

func (f filterFlags) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("filter must be key=value, got %q", s)
	}
	// Timestamps are passed on as time values so they get the API's format.
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		f[k] = t
		return nil
	}
	f[k] = v
	return nil
}

func run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	filters := filterFlags{}
	fs := flag.NewFlagSet("nube", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	var (
		storeID = fs.String("store", cfg.Nube.StoreID, "store id (NUBE_STORE_ID)")
		token   = fs.String("token", cfg.Nube.AccessToken, "access token (NUBE_ACCESS_TOKEN)")
		fields  = fs.String("fields", "", "comma separated fields to return on list")
		product = fs.String("product", "", "parent product id for variants and images")
		verbose = fs.Bool("v", false, "log every request")
	)
	fs.Var(filters, "filter", "list filter key=value, repeatable (RFC3339 values are sent as timestamps)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Nube.StoreID = *storeID
	cfg.Nube.AccessToken = *token
	if err := cfg.Nube.ValidateClient(); err != nil {
		return err
	}

	log, err := logger.New(cfg.AppEnv, *verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := []tiendanube.Option{tiendanube.WithUserAgent(cfg.Nube.UserAgent), tiendanube.WithLogger(log)}
	if cfg.Nube.APIBaseURL != "" {
		opts = append(opts, tiendanube.WithBaseURL(cfg.Nube.APIBaseURL))
	}
	store := tiendanube.NewClient(cfg.Nube.AccessToken, opts...).Store(cfg.Nube.StoreID)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing resource")
	}
	if rest[0] == tiendanube.ResourceStore {
		info, err := store.GetInfo(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, info)
	}
	if len(rest) < 2 {
		fs.Usage()
		return errors.New("missing action")
	}

	c, err := resolve(store, rest[0], *product)
	if err != nil {
		return err
	}
	log.Debug("running", zap.String("resource", rest[0]), zap.String("action", rest[1]))

	var out any
	switch action := rest[1]; action {
	case "list":
		lo := &tiendanube.ListOptions{Filters: tiendanube.Filters(filters)}
		if *fields != "" {
			lo.Fields = strings.Split(*fields, ",")
		}
		out, err = c.List(ctx, lo)
	case "get":
		if len(rest) < 3 {
			return errors.New("get needs an id")
		}
		out, err = c.Get(ctx, rest[2])
	case "add", "update":
		if len(rest) < 3 {
			return fmt.Errorf("%s needs a json file or -", action)
		}
		item, rerr := readItem(rest[2], stdin)
		if rerr != nil {
			return rerr
		}
		if action == "add" {
			out, err = c.Add(ctx, item)
		} else {
			out, err = c.Update(ctx, item)
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return err
	}
	return printJSON(stdout, out)
}

func resolve(store *tiendanube.Store, resource, productID string) (tiendanube.Collection, error) {
	switch resource {
	case tiendanube.SubResourceVariants, tiendanube.SubResourceImages:
		if productID == "" {
			return nil, fmt.Errorf("%s needs -product", resource)
		}
		return store.Products.Sub(productID, resource), nil
	}
	c, ok := store.Collection(resource)
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
	return c, nil
}

func readItem(path string, stdin io.Reader) (tiendanube.Item, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var item tiendanube.Item
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&item); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return item, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
