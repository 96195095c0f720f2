// Package ledger holds the balance bookkeeping for one student: three
// named accounts split into buckets, and the transaction records their
// mutations produce.
//
// Every mutation that succeeds returns exactly one Transaction. None of
// the mutations check sufficiency, so buckets may go negative; only
// Transfer constrains its amount, and only to be positive.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is one of the three balance groups a student owns.
type Account string

// Bucket is a sub-balance within an account.
type Bucket string

const (
	AccountCurrent    Account = "current"
	AccountEducation  Account = "education"
	AccountRetirement Account = "retirement"
)

const (
	BucketCash     Bucket = "cash"
	BucketTreasury Bucket = "treasury"
	BucketStocks   Bucket = "stocks"
)

// Sentinel values recorded in transaction endpoints that are not real
// accounts.
const (
	SourceInfusion = "INFUSION"
	SourceSet      = "SET"
)

// ExecuterAdmin marks mutations applied from the admin panel.
const ExecuterAdmin = "admin"

var (
	// ErrInvalidBucket is returned when an account does not hold the
	// named bucket.
	ErrInvalidBucket = errors.New("invalid account bucket")
	// ErrTransferAmountMustBePositive is returned when a transfer amount
	// is zero or negative.
	ErrTransferAmountMustBePositive = errors.New("transfer amount must be positive")
)

// accountBuckets fixes which buckets each account holds. Cash lives
// only in the current account.
var accountBuckets = map[Account][]Bucket{
	AccountCurrent:    {BucketCash, BucketTreasury, BucketStocks},
	AccountEducation:  {BucketTreasury, BucketStocks},
	AccountRetirement: {BucketTreasury, BucketStocks},
}

// Accounts returns the three accounts in display order.
func Accounts() []Account {
	return []Account{AccountCurrent, AccountEducation, AccountRetirement}
}

// BucketsFor returns the buckets the account holds.
func BucketsFor(account Account) []Bucket {
	return accountBuckets[account]
}

// ValidPair reports whether the account holds the bucket.
func ValidPair(account Account, bucket Bucket) bool {
	for _, b := range accountBuckets[account] {
		if b == bucket {
			return true
		}
	}
	return false
}

// Transaction is one immutable record of a balance mutation. The From
// fields name either a real account and bucket or one of the sentinel
// sources.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Executer    string          `json:"executer"`
	Reason      string          `json:"reason,omitempty"`
	Pelicoins   decimal.Decimal `json:"pelicoins"`
	AccountFrom string          `json:"accountFrom"`
	TypeFrom    string          `json:"typeFrom"`
	AccountTo   string          `json:"accountTo"`
	TypeTo      string          `json:"typeTo"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Balances maps every account to its bucket amounts.
type Balances map[Account]map[Bucket]decimal.Decimal

// NewBalances returns a mapping with every valid bucket at zero.
func NewBalances() Balances {
	b := make(Balances, len(accountBuckets))
	for account, buckets := range accountBuckets {
		b[account] = make(map[Bucket]decimal.Decimal, len(buckets))
		for _, bucket := range buckets {
			b[account][bucket] = decimal.Zero
		}
	}
	return b
}

// Get returns the amount in one bucket; missing entries read as zero.
func (b Balances) Get(account Account, bucket Bucket) decimal.Decimal {
	return b[account][bucket]
}

// AccountTotal sums the buckets of one account.
func (b Balances) AccountTotal(account Account) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b[account] {
		total = total.Add(amount)
	}
	return total
}

// Total sums every bucket across the three accounts.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for account := range b {
		total = total.Add(b.AccountTotal(account))
	}
	return total
}

// Deposit adds amount to one bucket. A negative amount subtracts and
// may take the bucket below zero.
func (b Balances) Deposit(
	amount decimal.Decimal,
	account Account, bucket Bucket,
	executer, reason string,
) (Transaction, error) {
	if !ValidPair(account, bucket) {
		return Transaction{}, ErrInvalidBucket
	}
	b[account][bucket] = b[account][bucket].Add(amount)
	return newTransaction(
		executer, reason, amount,
		SourceInfusion, SourceInfusion,
		string(account), string(bucket)), nil
}

// Set overwrites one bucket with an absolute amount.
func (b Balances) Set(
	amount decimal.Decimal,
	account Account, bucket Bucket,
	executer, reason string,
) (Transaction, error) {
	if !ValidPair(account, bucket) {
		return Transaction{}, ErrInvalidBucket
	}
	b[account][bucket] = amount
	return newTransaction(
		executer, reason, amount,
		SourceSet, SourceSet,
		string(account), string(bucket)), nil
}

// Yield grows one bucket by percent of its current value. A zero
// percent still produces a record.
func (b Balances) Yield(
	percent decimal.Decimal,
	account Account, bucket Bucket,
	executer, reason string,
) (Transaction, error) {
	if !ValidPair(account, bucket) {
		return Transaction{}, ErrInvalidBucket
	}
	delta := b[account][bucket].Mul(percent).Div(decimal.NewFromInt(100))
	b[account][bucket] = b[account][bucket].Add(delta)
	return newTransaction(
		executer, reason, delta,
		SourceInfusion, SourceInfusion,
		string(account), string(bucket)), nil
}

// Transfer moves a positive amount from one bucket to another. The
// source may go negative; same-bucket transfers are allowed and still
// recorded.
func (b Balances) Transfer(
	amount decimal.Decimal,
	fromAccount Account, fromBucket Bucket,
	toAccount Account, toBucket Bucket,
	executer string,
) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrTransferAmountMustBePositive
	}
	if !ValidPair(fromAccount, fromBucket) || !ValidPair(toAccount, toBucket) {
		return Transaction{}, ErrInvalidBucket
	}
	b[fromAccount][fromBucket] = b[fromAccount][fromBucket].Sub(amount)
	b[toAccount][toBucket] = b[toAccount][toBucket].Add(amount)
	return newTransaction(
		executer, "", amount,
		string(fromAccount), string(fromBucket),
		string(toAccount), string(toBucket)), nil
}

func newTransaction(
	executer, reason string,
	pelicoins decimal.Decimal,
	accountFrom, typeFrom, accountTo, typeTo string,
) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Executer:    executer,
		Reason:      reason,
		Pelicoins:   pelicoins,
		AccountFrom: accountFrom,
		TypeFrom:    typeFrom,
		AccountTo:   accountTo,
		TypeTo:      typeTo,
		CreatedAt:   time.Now(),
	}
}
