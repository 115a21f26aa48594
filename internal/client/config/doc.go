// Package config loads runtime configuration for the journal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file selected with --config.
//  3. Command-line flags registered on the root command; only flags the user
//     actually set override earlier values.
//
// # YAML schema
//
// Intervals use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	server_endpoint_addr: 127.0.0.1:50051
//	online_check_interval: 3s
//	database_path: journal_client.db
//	export_dir: reports
//	mail:
//	  backend: eml
//	  to: [shift.lead@example.com]
//	  cc: [asutp@example.com]
//	voice:
//	  language: ru-RU
//	  recorder_command: [arecord, -q, -f, S16_LE, -r, "16000", -c, "1", -t, raw]
package config
