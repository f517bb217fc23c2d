package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration session token lifetime (e.g., "72h")
//	-bcrypt-cost bcrypt work factor
//	-reset-token-ttl password reset window (e.g., "10m")
//	-cookie-ttl session cookie lifetime (e.g., "72h")
//	-environment error-reporting posture (production|development)
//	-public-base-url externally reachable base URL for reset links
//	-request-timeout request timeout (e.g., "30s")
//	-mail-endpoint mail provider submission URL
//	-mail-api-token mail provider API token
//	-mail-from outbound sender address
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var bcryptCost int
	var resetTokenTTL time.Duration
	var cookieTTL time.Duration
	var environment string
	var publicBaseURL string
	var requestTimeout time.Duration
	var mailEndpoint string
	var mailAPIToken string
	var mailFrom string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token lifetime (e.g., 72h)")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	flag.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password reset window (e.g., 10m)")
	flag.DurationVar(&cookieTTL, "cookie-ttl", 0, "Session cookie lifetime (e.g., 72h)")
	flag.StringVar(&environment, "environment", "", "Error-reporting posture (production|development)")
	flag.StringVar(&publicBaseURL, "public-base-url", "", "Externally reachable base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	flag.StringVar(&mailEndpoint, "mail-endpoint", "", "Mail provider submission URL")
	flag.StringVar(&mailAPIToken, "mail-api-token", "", "Mail provider API token")
	flag.StringVar(&mailFrom, "mail-from", "", "Outbound sender address")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			BcryptCost:    bcryptCost,
			ResetTokenTTL: resetTokenTTL,
			CookieTTL:     cookieTTL,
			Environment:   environment,
			PublicBaseURL: publicBaseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mail: Mail{
			Endpoint: mailEndpoint,
			APIToken: mailAPIToken,
			From:     mailFrom,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
