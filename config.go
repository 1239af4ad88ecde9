package contentkit

import "github.com/goliatone/go-contentkit/internal/runtimeconfig"

var (
	ErrRootRequired            = runtimeconfig.ErrRootRequired
	ErrBlogDirRequired         = runtimeconfig.ErrBlogDirRequired
	ErrRecordDirInvalid        = runtimeconfig.ErrRecordDirInvalid
	ErrCategoriesInvalid       = runtimeconfig.ErrCategoriesInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrJournalDSNInvalid       = runtimeconfig.ErrJournalDSNInvalid
	ErrConfigFileMissing       = runtimeconfig.ErrConfigFileMissing
)

type (
	Config          = runtimeconfig.Config
	RecordDirConfig = runtimeconfig.RecordDirConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	JournalConfig   = runtimeconfig.JournalConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig layers CONTENTKIT_* environment overrides (with `.env`
// support) over an optional YAML file and the defaults.
func LoadConfig(root, configPath string) (Config, error) {
	return runtimeconfig.Load(root, configPath)
}
