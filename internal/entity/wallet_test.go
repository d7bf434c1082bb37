package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplayBalance(t *testing.T) {
	txs := []*Transaction{
		{Type: TransactionTypePurchase, Amount: 100, BalanceBefore: 0, BalanceAfter: 100},
		{Type: TransactionTypeSpend, Amount: -15, BalanceBefore: 100, BalanceAfter: 85},
		{Type: TransactionTypeRefund, Amount: 15, BalanceBefore: 85, BalanceAfter: 100},
	}

	balance, err := ReplayBalance(txs)
	assert.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestReplayBalance_Empty(t *testing.T) {
	balance, err := ReplayBalance(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestReplayBalance_BrokenChain(t *testing.T) {
	txs := []*Transaction{
		{Amount: 100, BalanceBefore: 0, BalanceAfter: 100},
		{Amount: -15, BalanceBefore: 90, BalanceAfter: 75},
	}

	_, err := ReplayBalance(txs)
	assert.Error(t, err)
}

func TestReplayBalance_BadSnapshot(t *testing.T) {
	txs := []*Transaction{
		{Amount: 100, BalanceBefore: 0, BalanceAfter: 90},
	}

	_, err := ReplayBalance(txs)
	assert.Error(t, err)
}

func TestReplayBalance_Negative(t *testing.T) {
	txs := []*Transaction{
		{Amount: 50, BalanceBefore: 0, BalanceAfter: 50},
		{Amount: -60, BalanceBefore: 50, BalanceAfter: -10},
	}

	_, err := ReplayBalance(txs)
	assert.Error(t, err)
}
