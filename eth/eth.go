// Package eth implements the Ethereum side of the login flow: a client
// provider bound to the deployment's contract addresses, the proof
// verification call against the verifier contract, and the club membership
// reads against the club and membership registries.
package eth

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.vocdoni.io/dvote/log"
)

// Options is used to pass the parameters to load a new Client
type Options struct {
	EthURL                 string
	VerifierAddr           common.Address
	ClubRegistryAddr       common.Address
	MembershipRegistryAddr common.Address
	ClubName               string
	// PrivKey is the optional hex signing key used only for the
	// best-effort verification transaction. With or without 0x prefix.
	PrivKey string
}

// Client connects to the Ethereum blockchain to run the verifier and
// registry contract calls. The read client is always available; the signer
// is only set when a private key was configured.
type Client struct {
	client     *ethclient.Client
	chainID    *big.Int
	opts       Options
	signKey    *ecdsa.PrivateKey
	signerAddr common.Address
}

// Dial returns a fresh Client connected to the given EthURL. No caching is
// done across calls; client construction is cheap relative to the network
// round trips it wraps.
func Dial(opts Options) (*Client, error) {
	client, err := ethclient.Dial(opts.EthURL)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	// get network ChainID
	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, err
	}

	c := &Client{
		client:  client,
		chainID: chainID,
		opts:    opts,
	}
	if opts.PrivKey != "" {
		key, err := crypto.HexToECDSA(normalizeKey(opts.PrivKey))
		if err != nil {
			return nil, err
		}
		c.signKey = key
		c.signerAddr = crypto.PubkeyToAddress(key.PublicKey)
	}
	return c, nil
}

// HasSigner reports whether the Client can submit transactions
func (c *Client) HasSigner() bool {
	return c.signKey != nil
}

// SignerAddr returns the address of the configured signing key. Zero address
// when no key is configured.
func (c *Client) SignerAddr() common.Address {
	return c.signerAddr
}

// normalizeKey accepts a hex private key with or without the 0x prefix and
// returns the bare hex form expected by crypto.HexToECDSA
func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	k = strings.TrimPrefix(k, "0x")
	k = strings.TrimPrefix(k, "0X")
	return k
}
