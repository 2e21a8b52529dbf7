package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

func main() {
	cfg := config.Load()

	var (
		url     = flag.String("url", "", "webhook endpoint url (defaults to http://localhost<HTTP_ADDR>/v1/webhooks/tiendanube)")
		secret  = flag.String("secret", cfg.Nube.ClientSecret, "app client secret used to sign (NUBE_CLIENT_SECRET)")
		storeID = flag.Int64("store", 0, "store id placed in the payload")
		event   = flag.String("event", tiendanube.EventOrderPaid, "event name, e.g. order/paid or app/uninstalled")
		id      = flag.Int64("id", time.Now().Unix(), "id of the object the event refers to")
		payload = flag.String("payload", "", "path to a json payload file; overrides -store, -event and -id")
	)
	flag.Parse()

	if *url == "" {
		*url = defaultWebhookURL(cfg.HTTPAddr)
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "missing -secret (or NUBE_CLIENT_SECRET in env/.env)")
		os.Exit(2)
	}

	var (
		b   []byte
		err error
	)
	if *payload != "" {
		b, err = os.ReadFile(*payload)
	} else {
		if *storeID == 0 {
			fmt.Fprintln(os.Stderr, "missing -store or -payload")
			os.Exit(2)
		}
		b, err = json.Marshal(map[string]any{"store_id": *storeID, "event": *event, "id": *id})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "payload: %v\n", err)
		os.Exit(2)
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(b))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(2)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tiendanube.WebhookSignatureHeader, tiendanube.SignWebhook(b, *secret))

	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d\n%s\n", resp.StatusCode, string(body))
}

func defaultWebhookURL(httpAddr string) string {
	if len(httpAddr) > 0 && httpAddr[0] == ':' {
		return "http://localhost" + httpAddr + "/v1/webhooks/tiendanube"
	}
	return "http://localhost:8081/v1/webhooks/tiendanube"
}
