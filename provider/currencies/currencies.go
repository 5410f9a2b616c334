package currencies

import "github.com/sig-0/mxnrates/types"

var (
	USD types.Currency = "USD"
	MXN types.Currency = "MXN"
)
