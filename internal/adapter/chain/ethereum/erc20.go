package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// tokenDecimals is fixed for the payout token; user balances are kept in
// whole display units, wei conversion happens only at this boundary.
const tokenDecimals = 18

const erc20ABIJSON = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

var weiPerUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(tokenDecimals), nil)

func parseERC20ABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing erc20 abi: %w", err)
	}
	return parsed, nil
}

// unitsToWei converts whole display units to token wei.
func unitsToWei(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), weiPerUnit)
}

// weiToUnits converts token wei to whole display units, truncating dust.
func weiToUnits(wei *big.Int) int64 {
	return new(big.Int).Div(wei, weiPerUnit).Int64()
}
