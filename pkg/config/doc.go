// Package config loads mockroute project settings.
//
// Settings live in mockroute.yaml (or .mockroute.yaml) in the working
// directory, or in the file named by MOCKROUTE_CONFIG:
//
//	manifest: ./mocks/**/*.yml
//	stubs: ./mocks/stubs
//	schema: true
//	log:
//	  level: ${LOG_LEVEL:-info}
//	  format: text
//	  file: ./mockroute.log
//
// ${VAR} and ${VAR:-default} are expanded before parsing. Relative paths
// resolve against the directory holding the config file.
package config
