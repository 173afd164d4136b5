package deferswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"deferswap/internal/chain"
)

func call(ctx context.Context, client *chain.Client, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	resp, err := client.CallContract(ctx, to, data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func callAddress(ctx context.Context, client *chain.Client, to common.Address, parsed abi.ABI, method string, args ...interface{}) (common.Address, error) {
	values, err := call(ctx, client, to, parsed, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", method, err)
	}
	return addr, nil
}

func callBigInt(ctx context.Context, client *chain.Client, to common.Address, parsed abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	values, err := call(ctx, client, to, parsed, method, args...)
	if err != nil {
		return nil, err
	}
	out, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func callBool(ctx context.Context, client *chain.Client, to common.Address, parsed abi.ABI, method string, args ...interface{}) (bool, error) {
	values, err := call(ctx, client, to, parsed, method, args...)
	if err != nil {
		return false, err
	}
	out, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: unsupported bool type %T", method, values[0])
	}
	return out, nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
