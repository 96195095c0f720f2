package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
)

func checkAccountTotals(t *testing.T, b ledger.Balances) {
	t.Helper()
	grand := decimal.Zero
	for _, account := range ledger.Accounts() {
		sum := decimal.Zero
		for _, bucket := range ledger.BucketsFor(account) {
			sum = sum.Add(b.Get(account, bucket))
		}
		assert.True(t, sum.Equal(b.AccountTotal(account)),
			"account %s total mismatch", account)
		grand = grand.Add(sum)
	}
	assert.True(t, grand.Equal(b.Total()), "grand total mismatch")
}

func TestNewBalances_AllZero(t *testing.T) {
	b := ledger.NewBalances()
	for _, account := range ledger.Accounts() {
		for _, bucket := range ledger.BucketsFor(account) {
			assert.True(t, b.Get(account, bucket).IsZero())
		}
	}
	assert.True(t, b.Total().IsZero())
}

func TestValidPair(t *testing.T) {
	assert.True(t, ledger.ValidPair(ledger.AccountCurrent, ledger.BucketCash))
	assert.True(t, ledger.ValidPair(ledger.AccountEducation, ledger.BucketStocks))
	assert.True(t, ledger.ValidPair(ledger.AccountRetirement, ledger.BucketTreasury))
	assert.False(t, ledger.ValidPair(ledger.AccountEducation, ledger.BucketCash))
	assert.False(t, ledger.ValidPair(ledger.AccountRetirement, ledger.BucketCash))
	assert.False(t, ledger.ValidPair(ledger.Account("savings"), ledger.BucketCash))
}

func TestDeposit_RecordsTransaction(t *testing.T) {
	b := ledger.NewBalances()
	tx, err := b.Deposit(
		decimal.NewFromInt(25), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "allowance")
	require.NoError(t, err)

	assert.NotEqual(t, tx.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, ledger.ExecuterAdmin, tx.Executer)
	assert.Equal(t, "allowance", tx.Reason)
	assert.True(t, tx.Pelicoins.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, ledger.SourceInfusion, tx.AccountFrom)
	assert.Equal(t, ledger.SourceInfusion, tx.TypeFrom)
	assert.Equal(t, "current", tx.AccountTo)
	assert.Equal(t, "cash", tx.TypeTo)
	assert.False(t, tx.CreatedAt.IsZero())

	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(25)))
	checkAccountTotals(t, b)
}

func TestDeposit_RoundTripIsAdditiveInverse(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Deposit(
		decimal.NewFromInt(40), ledger.AccountEducation, ledger.BucketTreasury,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)
	_, err = b.Deposit(
		decimal.NewFromInt(-40), ledger.AccountEducation, ledger.BucketTreasury,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)
	assert.True(t, b.Get(ledger.AccountEducation, ledger.BucketTreasury).IsZero())
}

func TestDeposit_NegativeMayOverdraw(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Deposit(
		decimal.NewFromInt(-10), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "fine")
	require.NoError(t, err)
	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(-10)))
}

func TestSet_IsAbsoluteAndRepeatable(t *testing.T) {
	b := ledger.NewBalances()
	for i := 0; i < 2; i++ {
		tx, err := b.Set(
			decimal.NewFromInt(77), ledger.AccountRetirement, ledger.BucketStocks,
			ledger.ExecuterAdmin, "correction")
		require.NoError(t, err)
		assert.Equal(t, ledger.SourceSet, tx.AccountFrom)
		assert.Equal(t, ledger.SourceSet, tx.TypeFrom)
		assert.True(t, b.Get(ledger.AccountRetirement, ledger.BucketStocks).
			Equal(decimal.NewFromInt(77)))
	}
}

func TestYield_GrowsByPercent(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Set(
		decimal.NewFromInt(100), ledger.AccountCurrent, ledger.BucketTreasury,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)

	tx, err := b.Yield(
		decimal.NewFromInt(10), ledger.AccountCurrent, ledger.BucketTreasury,
		ledger.ExecuterAdmin, "@ 10%")
	require.NoError(t, err)
	assert.True(t, tx.Pelicoins.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketTreasury).
		Equal(decimal.NewFromInt(110)))
}

func TestYield_ZeroPercentStillRecords(t *testing.T) {
	b := ledger.NewBalances()
	tx, err := b.Yield(
		decimal.Zero, ledger.AccountCurrent, ledger.BucketTreasury,
		ledger.ExecuterAdmin, "@ 0%")
	require.NoError(t, err)
	assert.True(t, tx.Pelicoins.IsZero())
	assert.Equal(t, "@ 0%", tx.Reason)
}

func TestTransfer_MovesAmount(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Deposit(
		decimal.NewFromInt(50), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)

	tx, err := b.Transfer(
		decimal.NewFromInt(50),
		ledger.AccountCurrent, ledger.BucketCash,
		ledger.AccountEducation, ledger.BucketTreasury,
		"alice@loomis.org")
	require.NoError(t, err)
	assert.Equal(t, "alice@loomis.org", tx.Executer)
	assert.Equal(t, "current", tx.AccountFrom)
	assert.Equal(t, "cash", tx.TypeFrom)
	assert.Equal(t, "education", tx.AccountTo)
	assert.Equal(t, "treasury", tx.TypeTo)

	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketCash).IsZero())
	assert.True(t, b.Get(ledger.AccountEducation, ledger.BucketTreasury).
		Equal(decimal.NewFromInt(50)))
	checkAccountTotals(t, b)
}

func TestTransfer_MayOverdrawSource(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Transfer(
		decimal.NewFromInt(30),
		ledger.AccountCurrent, ledger.BucketCash,
		ledger.AccountRetirement, ledger.BucketStocks,
		"alice@loomis.org")
	require.NoError(t, err)
	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(-30)))
	assert.True(t, b.Get(ledger.AccountRetirement, ledger.BucketStocks).
		Equal(decimal.NewFromInt(30)))
}

func TestTransfer_SameBucketAllowed(t *testing.T) {
	b := ledger.NewBalances()
	_, err := b.Deposit(
		decimal.NewFromInt(10), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)

	tx, err := b.Transfer(
		decimal.NewFromInt(10),
		ledger.AccountCurrent, ledger.BucketCash,
		ledger.AccountCurrent, ledger.BucketCash,
		"alice@loomis.org")
	require.NoError(t, err)
	assert.Equal(t, tx.AccountFrom, tx.AccountTo)
	assert.True(t, b.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(10)))
}

func TestTransfer_NonPositiveRejected(t *testing.T) {
	b := ledger.NewBalances()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := b.Transfer(
			amount,
			ledger.AccountCurrent, ledger.BucketCash,
			ledger.AccountEducation, ledger.BucketTreasury,
			"alice@loomis.org")
		require.ErrorIs(t, err, ledger.ErrTransferAmountMustBePositive)
	}
}

func TestInvalidBucketRejectedEverywhere(t *testing.T) {
	b := ledger.NewBalances()
	amount := decimal.NewFromInt(5)

	_, err := b.Deposit(amount, ledger.AccountEducation, ledger.BucketCash, "x", "")
	require.ErrorIs(t, err, ledger.ErrInvalidBucket)

	_, err = b.Set(amount, ledger.AccountRetirement, ledger.BucketCash, "x", "")
	require.ErrorIs(t, err, ledger.ErrInvalidBucket)

	_, err = b.Yield(amount, ledger.AccountEducation, ledger.BucketCash, "x", "")
	require.ErrorIs(t, err, ledger.ErrInvalidBucket)

	_, err = b.Transfer(amount,
		ledger.AccountEducation, ledger.BucketCash,
		ledger.AccountCurrent, ledger.BucketCash, "x")
	require.ErrorIs(t, err, ledger.ErrInvalidBucket)

	for _, bucket := range ledger.BucketsFor(ledger.AccountEducation) {
		assert.True(t, b.Get(ledger.AccountEducation, bucket).IsZero())
	}
}
