// Package configs manages sealedconf's own settings.
//
// Settings live in a TOML file, .sealedconf.toml, next to the application's
// configuration files. Every field is optional; missing fields keep the
// values from DefaultSettings:
//
//	environment       = "Staging"
//	base_files        = ["appsettings.json", "appsettings.{env}.json"]
//	secrets_file      = "secrets.json"
//	optional          = true
//	reload_on_change  = true
//	secret_section    = "SecretFiles"
//	env_prefix        = "APP_"
//	connection_string = "SampleDatabase"
//
// A "{env}" placeholder in base_files expands to the active environment;
// entries using it are skipped when no environment is set. The environment
// is taken from SEALEDCONF_ENVIRONMENT, then from the file, then from
// ASPNETCORE_ENVIRONMENT.
//
// The optional salt field replaces the built-in key derivation salt. It must
// be a UUID. Changing it makes every sealed value unreadable.
package configs
