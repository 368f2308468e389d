package eventbus

import "go.uber.org/fx"

// Module provides the shared in-process event bus.
var Module = fx.Module("eventbus", fx.Provide(New))
