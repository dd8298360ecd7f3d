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
//	-d registry database DSN
//	-f registry JSON file path
//	-c/-config json file path with configs
//	-authority-address trust authority base URL
//	-authority-timeout outbound request timeout (e.g., "15s")
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-hash-key request integrity hash key
//	-instance-id device instance identifier
//	-device-model device hardware model
//	-checkin-interval fallback delay between enrollment attempts
//	-retry-period fallback delay between retries after a failure
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var registryDSN string
	var registryFilePath string
	var jsonConfigPath string
	var authorityAddress string
	var authorityTimeout time.Duration
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var hashKey string
	var instanceID string
	var deviceModel string
	var checkinInterval time.Duration
	var retryPeriod time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&registryDSN, "d", "", "Registry database DSN")
	flag.StringVar(&registryFilePath, "f", "", "Registry JSON file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&authorityAddress, "authority-address", "", "Trust authority base URL")
	flag.DurationVar(&authorityTimeout, "authority-timeout", 0, "Outbound request timeout (e.g., 15s)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s, 1m)")
	flag.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	flag.StringVar(&instanceID, "instance-id", "", "Device instance identifier")
	flag.StringVar(&deviceModel, "device-model", "", "Device hardware model")
	flag.DurationVar(&checkinInterval, "checkin-interval", 0, "Fallback delay between enrollment attempts")
	flag.DurationVar(&retryPeriod, "retry-period", 0, "Fallback delay between retries after a failure")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
			InstanceID:    instanceID,
			DeviceModel:   deviceModel,
		},
		Storage: Storage{
			DB: DB{
				DSN: registryDSN,
			},
			Files: Files{
				RegistryPath: registryFilePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			AuthorityAddress: authorityAddress,
			RequestTimeout:   authorityTimeout,
		},
		Enroller: Enroller{},
		Workers: Workers{
			CheckinInterval: checkinInterval,
			RetryPeriod:     retryPeriod,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
