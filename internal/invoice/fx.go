package invoice

import (
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/smallbiznis/invoicely/internal/invoice/store"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	store.Module,
	draft.Module,
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
