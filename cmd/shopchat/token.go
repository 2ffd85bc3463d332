package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmh2003/shopchat/config"
	"github.com/nmh2003/shopchat/internal/runtime"
)

// tokenCMD mints a signed token for a user id, for poking the chat endpoint
// from curl during development.
func tokenCMD() *cobra.Command {
	var cfgPath string
	var userID string
	var ttl time.Duration

	var token = &cobra.Command{
		Use:   "token",
		Short: "Issue a development JWT for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			if cfg.Server.JWTSecret == "" {
				return fmt.Errorf("server.jwt_secret not configured")
			}
			signed, err := runtime.SignJWT(userID, []byte(cfg.Server.JWTSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Println(signed)
			return nil
		},
	}
	token.Flags().StringVar(&userID, "user", "dev-user", "subject user id")
	token.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	token.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return token
}
