package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"settlement-orchestrator/config"
	"settlement-orchestrator/internal/adapter/chain"
	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/units"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// NativeSymbol is the asset symbol of the chain's native coin.
const NativeSymbol = "ETH"

const nativeDecimals = 18

const erc20TransferABI = `[{
	"inputs": [
		{"internalType": "address", "name": "to", "type": "address"},
		{"internalType": "uint256", "name": "amount", "type": "uint256"}
	],
	"name": "transfer",
	"outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
	"stateMutability": "nonpayable",
	"type": "function"
}]`

var erc20ABI = mustParseABI(erc20TransferABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parse erc20 abi: %v", err))
	}
	return parsed
}

type asset struct {
	contract *common.Address // nil for the native coin
	decimals int32
}

// Variant signs and submits EVM transfers of the native coin and configured ERC-20 tokens.
type Variant struct {
	client   Client
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
	gasLimit uint64
	tokenGas uint64
	assets   map[string]asset
}

// NewVariant builds the EVM variant from config. The key must be hex encoded.
func NewVariant(cfg config.EVMConfig, client Client) (*Variant, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse evm private key: %w", err)
	}

	assets := map[string]asset{NativeSymbol: {decimals: nativeDecimals}}
	for _, a := range cfg.Assets {
		if !common.IsHexAddress(a.Contract) {
			return nil, fmt.Errorf("asset %s: invalid contract address %q", a.Symbol, a.Contract)
		}
		contract := common.HexToAddress(a.Contract)
		assets[strings.ToUpper(a.Symbol)] = asset{contract: &contract, decimals: a.Decimals}
	}

	return &Variant{
		client:   client,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  big.NewInt(cfg.ChainID),
		gasLimit: cfg.GasLimit,
		tokenGas: cfg.TokenGas,
		assets:   assets,
	}, nil
}

func (v *Variant) Chain() domain.Chain {
	return domain.ChainEVM
}

func (v *Variant) SourceAddress() string {
	return v.from.Hex()
}

func (v *Variant) Validate(req domain.WalletSendRequest) error {
	if req.Memo != "" {
		return apperror.ErrMemoUnsupported(string(domain.ChainEVM))
	}
	if !common.IsHexAddress(req.Address) {
		return apperror.ErrInvalidAddress(req.Address)
	}
	if _, ok := v.assets[strings.ToUpper(req.Asset)]; !ok {
		return apperror.ErrUnsupportedAsset(string(domain.ChainEVM), req.Asset)
	}
	return nil
}

func (v *Variant) Build(ctx context.Context, req domain.WalletSendRequest) (chain.SignedTx, error) {
	a := v.assets[strings.ToUpper(req.Asset)]
	amount, err := units.ToBaseUnits(req.Amount, a.decimals)
	if err != nil {
		return nil, apperror.ErrInvalidAmount()
	}
	if amount.Sign() == 0 {
		return nil, apperror.Validation(fmt.Sprintf("amount %s is below the smallest unit of %s", req.Amount, req.Asset))
	}

	nonce, err := v.client.PendingNonceAt(ctx, v.from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := v.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	to := common.HexToAddress(req.Address)
	inner := &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      v.gasLimit,
		To:       &to,
		Value:    amount,
	}
	if a.contract != nil {
		data, err := erc20ABI.Pack("transfer", to, amount)
		if err != nil {
			return nil, fmt.Errorf("pack transfer: %w", err)
		}
		inner.To = a.contract
		inner.Value = big.NewInt(0)
		inner.Gas = v.tokenGas
		inner.Data = data
	}

	signed, err := types.SignTx(types.NewTx(inner), types.NewEIP155Signer(v.chainID), v.key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sign transaction: %w", err))
	}
	return signedTx{tx: signed}, nil
}

// Broadcast treats "already known" as accepted: the node holds this exact payload.
func (v *Variant) Broadcast(ctx context.Context, stx chain.SignedTx) error {
	tx, ok := stx.(signedTx)
	if !ok {
		return apperror.InternalError(fmt.Errorf("unexpected payload type %T", stx))
	}
	err := v.client.SendTransaction(ctx, tx.tx)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "already known") {
		return nil
	}
	return err
}

func (v *Variant) Lookup(ctx context.Context, txID string) (bool, error) {
	_, _, err := v.client.TransactionByHash(ctx, common.HexToHash(txID))
	if errors.Is(err, ethereum.NotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (v *Variant) SenderOf(ctx context.Context, txID string) (string, error) {
	tx, _, err := v.client.TransactionByHash(ctx, common.HexToHash(txID))
	if errors.Is(err, ethereum.NotFound) {
		return "", apperror.ErrTransactionNotFound(txID)
	}
	if err != nil {
		return "", apperror.ErrLedgerUnavailable(err)
	}

	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return "", apperror.Wrap("LED_005", "cannot recover transaction sender", apperror.ClassPermanent, err)
	}
	return sender.Hex(), nil
}

type signedTx struct {
	tx *types.Transaction
}

func (s signedTx) ID() string {
	return s.tx.Hash().Hex()
}
