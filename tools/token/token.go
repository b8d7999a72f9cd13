// Token prints a signed WindBorne API token, for trying requests by hand:
//
//	curl -u "$WB_CLIENT_ID:$(token)" https://sensor-data.windbornesystems.com/api/v1/super_observations.json
//
// The token does not expose the API key, so it is safe to share with other
// processes until it expires.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/wbtools/wb2littler/config"
	"github.com/wbtools/wb2littler/wb"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	token, err := wb.NewAuthenticator(cfg.ClientID, cfg.APIKey, cfg.TokenTTL).Token()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
