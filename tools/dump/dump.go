// Dump is a tool for inspecting raw WindBorne API pages.
//
// usage: dump START [END]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/kr/pretty"

	"github.com/wbtools/wb2littler/config"
	"github.com/wbtools/wb2littler/wb"
)

const UserAgent = "wb2littler-dump/0.1"

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Println("usage: dump START [END]")
		os.Exit(1)
	}
	start, err := time.ParseInLocation("2006-01-02_15:04", os.Args[1], time.UTC)
	if err != nil {
		log.Fatalf("bad START: %v", err)
	}
	var end time.Time
	if len(os.Args) == 3 {
		end, err = time.ParseInLocation("2006-01-02_15:04", os.Args[2], time.UTC)
		if err != nil {
			log.Fatalf("bad END: %v", err)
		}
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	auth := wb.NewAuthenticator(cfg.ClientID, cfg.APIKey, cfg.TokenTTL)
	client := wb.NewClient(cfg.BaseURL, auth, UserAgent, wb.WithAuthScheme(cfg.AuthScheme))

	n := 0
	for page, err := range client.Pages(ctx, start, end) {
		if err != nil {
			log.Fatal(err)
		}
		n += len(page.Observations)
		pretty.Println(page)
	}
	log.Println("downloaded", n, "observations")
}
