// Command tokengen prints an access token for local testing.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ferdiebergado/credkit/internal/app"
	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
)

func main() {
	sub := flag.String("sub", "", "token subject (username)")
	cfgFile := flag.String("config", "config.json", "path to the json config")
	flag.Parse()

	if *sub == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*sub, *cfgFile); err != nil {
		slog.Error("Failed to generate token.", "reason", err)
		os.Exit(1)
	}
}

func run(sub, cfgFile string) error {
	cfg, err := app.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	keys, err := jwt.NewKeyProvider(cfg.JWT.Secret)
	if err != nil {
		return fmt.Errorf("load signing key: %w", err)
	}

	codec, err := app.NewCodec(cfg.JWT.Codec)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(codec, keys, cfg.JWT.TTL.Duration)
	if err != nil {
		return err
	}

	token, err := tokens.Issue(sub, nil)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
