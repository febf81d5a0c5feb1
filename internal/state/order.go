package state

import (
	"crypto/rand"
	"math/big"
)

// OrderNumberLen is the number of decimal digits in an order number.
const OrderNumberLen = 15

var orderNumberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(OrderNumberLen), nil)

// NewOrderNumber returns a random 15-digit decimal string, zero padded.
func NewOrderNumber() string {
	n, err := rand.Int(rand.Reader, orderNumberSpace)
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	s := n.String()
	for len(s) < OrderNumberLen {
		s = "0" + s
	}
	return s
}
