package goinscription

import (
	"context"

	"github.com/meme-bots/go-inscription/sol"
	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"go.uber.org/zap"
)

// NewInscriber opens the ledger described by cfg. A nil log gets a logger at
// cfg.LogLevel.
func NewInscriber(ctx context.Context, cfg types.Config, log *zap.SugaredLogger) (types.InscriberInterface, error) {
	if log == nil {
		level := cfg.LogLevel
		if level == "" {
			level = "info"
		}
		var err error
		if log, err = utils.NewLogger("inscription", level); err != nil {
			return nil, err
		}
	}
	return sol.NewInscriber(ctx, &cfg, log)
}
