package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-t", "-r", "-z", "-i", "-n", "-u", "-p", "-b", "-g", "-e"}

// parseFlags overlays command-line flags on config.
//
//	-a string   gRPC bind address
//	-d string   PostgreSQL DSN
//	-s string   JWT secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-z string   time zone of the shift clock
//	-i int      database health check interval, minutes
//	-n int      filter page size
//	-u/-p/-b/-g/-e  S3 user, password, bucket, region, endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "shift clock time zone")
	healthCheck := fs.Int("i", int(config.HealthCheckInterval.Minutes()), "database health check interval (in minutes)")
	fs.IntVar(&config.SearchPageSize, "n", config.SearchPageSize, "filter page size")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
	config.HealthCheckInterval = time.Duration(*healthCheck) * time.Minute
}
