package webapi

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
)

func TestBalancesRoute_RequiresToken(t *testing.T) {
	env := setupTestApp(t)
	resp := env.makeRequest(t, "GET", "/account/balances", "", "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBalancesRoute_Success(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")
	u.Balances[ledger.AccountCurrent][ledger.BucketCash] = decimal.NewFromInt(15)
	u.Balances[ledger.AccountEducation][ledger.BucketStocks] = decimal.NewFromInt(5)
	env.userRepo.EXPECT().GetByEmail(mock.Anything, u.Email).Return(u, nil)

	resp := env.makeRequest(t, "GET", "/account/balances", "",
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Total    string `json:"total"`
			Accounts map[string]struct {
				Total   string            `json:"total"`
				Buckets map[string]string `json:"buckets"`
			} `json:"accounts"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "20", envelope.Data.Total)
	assert.Equal(t, "15", envelope.Data.Accounts["current"].Total)
	assert.Equal(t, "15", envelope.Data.Accounts["current"].Buckets["cash"])
	assert.Equal(t, "5", envelope.Data.Accounts["education"].Buckets["stocks"])
}

func TestTransactionsRoute_Success(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")
	tx, err := u.Balances.Deposit(
		decimal.NewFromInt(10), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "allowance")
	require.NoError(t, err)
	env.userRepo.EXPECT().GetByEmail(mock.Anything, u.Email).Return(u, nil)
	env.txRepo.EXPECT().ListByUser(mock.Anything, u.ID).
		Return([]ledger.Transaction{tx}, nil)

	resp := env.makeRequest(t, "GET", "/account/transactions", "",
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []struct {
			Executer    string `json:"executer"`
			Reason      string `json:"reason"`
			Pelicoins   string `json:"pelicoins"`
			AccountFrom string `json:"accountFrom"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, ledger.ExecuterAdmin, envelope.Data[0].Executer)
	assert.Equal(t, "allowance", envelope.Data[0].Reason)
	assert.Equal(t, "10", envelope.Data[0].Pelicoins)
	assert.Equal(t, ledger.SourceInfusion, envelope.Data[0].AccountFrom)
}

func TestTransferRoute_Success(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")
	u.Balances[ledger.AccountCurrent][ledger.BucketCash] = decimal.NewFromInt(50)
	env.userRepo.EXPECT().GetByEmail(mock.Anything, u.Email).Return(u, nil)
	env.userRepo.EXPECT().SaveBalances(mock.Anything, u.ID, u.Balances).Return(nil)
	env.txRepo.EXPECT().Create(mock.Anything, u.ID, mock.Anything).Return(nil)

	resp := env.makeRequest(t, "POST", "/account/transfer",
		`{"amount":"20","accountFrom":"current","typeFrom":"cash","accountTo":"retirement","typeTo":"treasury"}`,
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Executer  string `json:"executer"`
			Pelicoins string `json:"pelicoins"`
			AccountTo string `json:"accountTo"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, u.Email, envelope.Data.Executer)
	assert.Equal(t, "20", envelope.Data.Pelicoins)
	assert.Equal(t, "retirement", envelope.Data.AccountTo)
	assert.True(t, u.Balances.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(30)))
}

func TestTransferRoute_NonPositiveAmount(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")
	env.userRepo.EXPECT().GetByEmail(mock.Anything, u.Email).Return(u, nil)

	resp := env.makeRequest(t, "POST", "/account/transfer",
		`{"amount":"-5","accountFrom":"current","typeFrom":"cash","accountTo":"retirement","typeTo":"treasury"}`,
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransferRoute_NonNumericAmount(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")

	resp := env.makeRequest(t, "POST", "/account/transfer",
		`{"amount":"lots","accountFrom":"current","typeFrom":"cash","accountTo":"retirement","typeTo":"treasury"}`,
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransferRoute_InvalidBucket(t *testing.T) {
	env := setupTestApp(t)
	u := newTestUser(t, "alice@loomis.org")
	env.userRepo.EXPECT().GetByEmail(mock.Anything, u.Email).Return(u, nil)

	// cash lives only in the current account
	resp := env.makeRequest(t, "POST", "/account/transfer",
		`{"amount":"5","accountFrom":"current","typeFrom":"cash","accountTo":"retirement","typeTo":"cash"}`,
		env.userToken(t, u.Email, u.Name))
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
