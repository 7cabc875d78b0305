// Package main is the entry point for the quantity-service application.
//
// @title           Quantity Selector API
// @version         1.0.0
// @description     API for constrained quantity selection on product pages.
//
//	Each selector line owns a single authoritative quantity bound by live
//	min/max/step rules, with optional case-pack counting and an effective
//	maximum that accounts for quantity already committed in the cart.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/quantity-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin bearer token for the profile management API.
//
// @tag.name        Selectors
// @tag.description Selector line lifecycle and quantity operations
//
// @tag.name        Cart
// @tag.description Committed cart quantity synchronization
//
// @tag.name        Profiles
// @tag.description Product constraint profile management
//
// @tag.name        Auth
// @tag.description Admin token endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/quantity-service/config"
	"github.com/guttosm/quantity-service/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
