package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/clubaccess/zkauth-node/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"go.vocdoni.io/dvote/log"
)

// verifyProofReturn mirrors the verifier contract's verifyProof outputs
type verifyProofReturn struct {
	Signer common.Address
	Valid  bool
}

// VerifyProof checks the given proof against the verifier contract through a
// read-only simulated call. When the proof is valid and a signing key is
// configured, the same call is additionally submitted as a transaction to
// leave an on-chain audit record; submission failure is logged but never
// surfaced, as the write is not a precondition of authentication. An invalid
// proof is not an error: it returns an outcome with Valid=false.
func (c *Client) VerifyProof(ctx context.Context,
	proof *types.Proof) (*types.VerificationOutcome, error) {
	a, b, cp, input := proofABIArgs(proof)
	data, err := verifierABI.Pack("verifyProof", a, b, cp, input)
	if err != nil {
		return nil, fmt.Errorf("can not pack verifyProof args: %w", err)
	}

	res, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.opts.VerifierAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("verifyProof call failed: %w", err)
	}

	var ret verifyProofReturn
	if err := verifierABI.UnpackIntoInterface(&ret, "verifyProof", res); err != nil {
		return nil, fmt.Errorf("can not unpack verifyProof return: %w", err)
	}

	if !ret.Valid {
		return &types.VerificationOutcome{}, nil
	}

	outcome := &types.VerificationOutcome{
		Valid:         true,
		SignerAddress: ret.Signer,
		ProofInput:    proof.PublicInput(),
	}
	if c.signKey == nil {
		log.Debugf("no signing key configured, skipping verification tx for %s",
			ret.Signer.Hex())
		return outcome, nil
	}
	txHash, err := c.submitVerification(ctx, data)
	if err != nil {
		log.Warnw("verification tx submission failed",
			"signer", ret.Signer.Hex(), "err", err)
		return outcome, nil
	}
	log.Debugf("verification tx submitted: %s", txHash)
	outcome.TxHash = txHash
	return outcome, nil
}

// submitVerification sends the already-packed verifyProof call as a signed
// transaction and returns its hash without waiting for it to be mined
func (c *Client) submitVerification(ctx context.Context, data []byte) (string, error) {
	nonce, err := c.client.PendingNonceAt(ctx, c.signerAddr)
	if err != nil {
		return "", fmt.Errorf("can not get nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("can not get gas price: %w", err)
	}
	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signerAddr,
		To:   &c.opts.VerifierAddr,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("can not estimate gas: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, c.opts.VerifierAddr, big.NewInt(0),
		gasLimit, gasPrice, data)
	signedTx, err := ethtypes.SignTx(tx,
		ethtypes.LatestSignerForChainID(c.chainID), c.signKey)
	if err != nil {
		return "", fmt.Errorf("can not sign tx: %w", err)
	}
	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("can not send tx: %w", err)
	}
	return signedTx.Hash().Hex(), nil
}

// proofABIArgs converts the proof scalars into the fixed-size big.Int arrays
// expected by the verifyProof ABI arguments
func proofABIArgs(p *types.Proof) (a [2]*big.Int, b [2][2]*big.Int,
	c [2]*big.Int, input [1]*big.Int) {
	for i := 0; i < 2; i++ {
		a[i] = p.A[i].BigInt()
		c[i] = p.C[i].BigInt()
		for j := 0; j < 2; j++ {
			b[i][j] = p.B[i][j].BigInt()
		}
	}
	input[0] = p.Input[0].BigInt()
	return a, b, c, input
}
