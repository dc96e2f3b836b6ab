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
//	-account-token pre-shared account credential
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-token-duration session token duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-server-url sync server base URL
//	-device-id stable device identifier
//	-device-name human-readable device name
//	-read-only pull-only device, never originates writes
//	-history local clipboard history database path
//	-queue pending queue file path
//	-checkpoint pull checkpoint file path
//	-sync-interval periodic sync interval (e.g., "30s")
//	-encrypt seal outbound payloads with the local key
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var accountToken string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var serverURL string
	var deviceID string
	var deviceName string
	var readOnly bool
	var historyPath string
	var queuePath string
	var checkpointPath string
	var syncInterval time.Duration
	var encryptPayloads bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accountToken, "account-token", "", "Pre-shared account token")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 24h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&serverURL, "server-url", "", "Sync server base URL")
	flag.StringVar(&deviceID, "device-id", "", "Stable device identifier")
	flag.StringVar(&deviceName, "device-name", "", "Human-readable device name")
	flag.BoolVar(&readOnly, "read-only", false, "Pull-only device, never originates writes")
	flag.StringVar(&historyPath, "history", "", "Clipboard history database path")
	flag.StringVar(&queuePath, "queue", "", "Pending queue file path")
	flag.StringVar(&checkpointPath, "checkpoint", "", "Pull checkpoint file path")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 30s)")
	flag.BoolVar(&encryptPayloads, "encrypt", false, "Seal outbound payloads with the local key")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AccountToken:  accountToken,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Device: Device{
			ID:       deviceID,
			Name:     deviceName,
			ReadOnly: readOnly,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				HistoryPath:    historyPath,
				QueuePath:      queuePath,
				CheckpointPath: checkpointPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			ServerURL:      serverURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			EncryptPayloads: encryptPayloads,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
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
