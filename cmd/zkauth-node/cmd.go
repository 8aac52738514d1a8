package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/clubaccess/zkauth-node/api"
	"github.com/clubaccess/zkauth-node/auth"
	"github.com/clubaccess/zkauth-node/db"
	"github.com/clubaccess/zkauth-node/eth"
	"github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3"
	flag "github.com/spf13/pflag"
	"go.vocdoni.io/dvote/log"
)

// Config contains the main configuration parameters of the node
type Config struct {
	dir, logLevel, port    string
	ethURL                 string
	verifierAddr           string
	clubRegistryAddr       string
	membershipRegistryAddr string
	clubName               string
	tokenIssuer            string
	tokenExpiration        uint64
}

func main() {
	config := Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	flag.StringVarP(&config.dir, "dir", "d", filepath.Join(home, ".zkauth-node"),
		"storage data directory")
	flag.StringVarP(&config.logLevel, "logLevel", "l", "info", "log level (info, debug, warn, error)")
	flag.StringVarP(&config.port, "port", "p", "8080", "network port for the HTTP API")
	flag.StringVar(&config.ethURL, "eth", "", "web3 provider url")
	flag.StringVar(&config.verifierAddr, "verifier", "", "ZKP verifier contract address")
	flag.StringVar(&config.clubRegistryAddr, "clubregistry", "", "club registry contract address")
	flag.StringVar(&config.membershipRegistryAddr, "membershipregistry", "",
		"membership registry contract address")
	flag.StringVar(&config.clubName, "club", "", "name of the club gating access")
	flag.StringVar(&config.tokenIssuer, "issuer", "zkauth-node", "JWT issuer")
	flag.Uint64Var(&config.tokenExpiration, "tokenexpiration", 72,
		"session token expiration (hours)")

	flag.CommandLine.SortFlags = false
	flag.Parse()

	log.Init(config.logLevel, "stdout")

	log.Debugf("Config: %#v\n", config)

	if config.ethURL == "" || config.verifierAddr == "" ||
		config.clubRegistryAddr == "" || config.membershipRegistryAddr == "" ||
		config.clubName == "" {
		log.Fatal("eth, verifier, clubregistry, membershipregistry and club" +
			" flags are all required. Use --help to see the list of available flags.")
	}

	jwtKey := os.Getenv("ZKAUTH_JWT_KEY")
	if jwtKey == "" {
		log.Fatal("ZKAUTH_JWT_KEY env var is required to sign session tokens")
	}
	// optional: without it the best-effort verification tx is skipped
	privKey := os.Getenv("ZKAUTH_PRIV_KEY")
	if privKey == "" {
		log.Info("ZKAUTH_PRIV_KEY not set, proof verifications will not be" +
			" recorded on-chain")
	}

	// prepare DB
	if err := os.MkdirAll(config.dir, 0o700); err != nil {
		log.Fatal(err)
	}
	sqlDB, err := sql.Open("sqlite3", filepath.Join(config.dir, "zkauth.sqlite3"))
	if err != nil {
		log.Fatal(err)
	}
	sqlite := db.NewSQLite(sqlDB)
	if err := sqlite.Migrate(); err != nil {
		log.Fatal(err)
	}

	ethOpts := eth.Options{
		EthURL:                 config.ethURL,
		VerifierAddr:           common.HexToAddress(config.verifierAddr),
		ClubRegistryAddr:       common.HexToAddress(config.clubRegistryAddr),
		MembershipRegistryAddr: common.HexToAddress(config.membershipRegistryAddr),
		ClubName:               config.clubName,
		PrivKey:                privKey,
	}
	// check that the node can reach the chain before serving
	ethC, err := eth.Dial(ethOpts)
	if err != nil {
		log.Fatal(err)
	}
	if ethC.HasSigner() {
		log.Infof("verification txs will be signed by %s", ethC.SignerAddr().Hex())
	}

	tokens := auth.NewTokenService([]byte(jwtKey),
		time.Duration(config.tokenExpiration)*time.Hour, config.tokenIssuer)

	authService, err := auth.New(auth.Options{
		SQLite: sqlite,
		Chain: func() (auth.ChainClient, error) {
			return eth.Dial(ethOpts)
		},
		Tokens:   tokens,
		ClubName: config.clubName,
	})
	if err != nil {
		log.Fatal(err)
	}

	a, err := api.New(authService)
	if err != nil {
		log.Fatal(err)
	}
	err = a.Serve(config.port)
	if err != nil {
		log.Fatal(err)
	}
}
