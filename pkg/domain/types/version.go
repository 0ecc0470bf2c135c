package types

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/m-mizutani/releasegpt/pkg/domain/types.Version=..."
var Version = "dev"

// ServiceName is reported by the health endpoint and used as the Slack username
const ServiceName = "releasegpt"
