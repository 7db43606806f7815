package draft

import "go.uber.org/fx"

var Module = fx.Module("invoice.draft",
	fx.Provide(NewRegistry),
)
