package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	errTokenSignKeyIsRequired = errors.New("token sign key is required")
	errDSNIsRequired          = errors.New("database DSN is required")
	errUnknownEnvironment     = errors.New("environment must be either `production` or `development`")
)
