package store

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.store",
	fx.Provide(
		provideIDSource,
		New,
		func(s *Store) domain.Store { return s },
	),
)

func provideIDSource(cfg config.Config, c clock.Clock, node *snowflake.Node) IDSource {
	return NewIDSource(cfg.IDStrategy, c, node)
}
