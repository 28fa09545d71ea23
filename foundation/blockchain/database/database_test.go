package database_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/shopspring/decimal"
)

func Test_Transactions(t *testing.T) {
	type table struct {
		name     string
		miner    database.AccountID
		accounts []database.AccountID
		txs      []string
		final    map[database.AccountID]string
	}

	tt := []table{
		{
			name:     "basic",
			miner:    "miner",
			accounts: []database.AccountID{"ali", "hamed", "miner"},
			txs:      []string{"ali-hamed-1.5", "ali-hamed-2", "hamed-miner-0.25"},
			final: map[database.AccountID]string{
				"ali":   "1.5",
				"hamed": "8.25",
				"miner": "11.5",
			},
		},
		{
			name:     "empty",
			miner:    "ali",
			accounts: []database.AccountID{"ali", "hamed"},
			final: map[database.AccountID]string{
				"ali":   "11.25",
				"hamed": "5",
			},
		},
	}

	t.Log("Given the need to validate the transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of accounts.", testID)
			{
				f := func(t *testing.T) {
					db := database.New(genesis.Default())

					for _, accountID := range tst.accounts {
						if _, err := db.AddAccount(accountID, nil); err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to add account %s: %v", failed, testID, accountID, err)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add accounts.", success, testID)

					supply := db.TotalBalance()

					var txs []database.Tx
					for _, trx := range tst.txs {
						tx, err := database.ParseTx(trx)
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to parse transaction: %v", failed, testID, err)
						}

						if err := db.Reserve(tx); err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to reserve transaction: %v", failed, testID, err)
						}
						txs = append(txs, tx)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to reserve transactions.", success, testID)

					if err := db.ApplyMiningReward(tst.miner); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to apply miner reward: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to apply miner reward.", success, testID)

					for _, tx := range txs {
						if err := db.ApplyTransaction(tx); err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to apply transaction: %v", failed, testID, err)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to apply transactions.", success, testID)

					for _, account := range db.Copy() {
						exp, exists := tst.final[account.AccountID]
						if !exists {
							t.Errorf("\t%s\tTest %d:\tShould have account %s in balances.", failed, testID, account.AccountID)
							continue
						}

						if !account.Balance.Equal(decimal.RequireFromString(exp)) {
							t.Errorf("\t%s\tTest %d:\tShould have correct balance for %s.", failed, testID, account.AccountID)
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, account.Balance)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
						} else {
							t.Logf("\t%s\tTest %d:\tShould have correct balance for %s.", success, testID, account.AccountID)
						}

						if !account.Available.Equal(account.Balance) {
							t.Errorf("\t%s\tTest %d:\tShould have available equal to balance after settlement for %s.", failed, testID, account.AccountID)
						}
					}

					exp := supply.Add(genesis.Default().MiningReward)
					if got := db.TotalBalance(); !got.Equal(exp) {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
						t.Fatalf("\t%s\tTest %d:\tShould only mint the mining reward.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould only mint the mining reward.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Reserve(t *testing.T) {
	t.Log("Given the need to stop double spending pending value.")
	{
		db := database.New(genesis.Default())
		db.AddAccount("ali", nil)
		db.AddAccount("hamed", nil)

		tx1, _ := database.ParseTx("ali-hamed-3")
		tx2, _ := database.ParseTx("ali-hamed-2.5")

		if err := db.Reserve(tx1); err != nil {
			t.Fatalf("\t%s\tShould be able to reserve the first transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to reserve the first transaction.", success)

		if err := db.Reserve(tx2); !errors.Is(err, database.ErrInsufficientFunds) {
			t.Fatalf("\t%s\tShould reject the second transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject the second transaction.", success)

		ali, err := db.Query("ali")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to query the account: %v", failed, err)
		}

		if !ali.Available.Equal(decimal.NewFromInt(2)) || !ali.Balance.Equal(decimal.NewFromInt(5)) {
			t.Logf("\t%s\tgot: balance %s available %s", failed, ali.Balance, ali.Available)
			t.Fatalf("\t%s\tShould only debit the available balance.", failed)
		}
		t.Logf("\t%s\tShould only debit the available balance.", success)

		unknown, _ := database.ParseTx("ali-jack-1")
		if err := db.Reserve(unknown); !errors.Is(err, database.ErrUnknownAccount) {
			t.Fatalf("\t%s\tShould reject an unknown receiver: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an unknown receiver.", success)

		if _, err := db.Query("jack"); !errors.Is(err, database.ErrUnknownAccount) {
			t.Fatalf("\t%s\tShould fail to query an unknown account: %v", failed, err)
		}
		t.Logf("\t%s\tShould fail to query an unknown account.", success)

		if _, err := db.AddAccount("ali", nil); !errors.Is(err, database.ErrAccountExists) {
			t.Fatalf("\t%s\tShould refuse to overwrite an account: %v", failed, err)
		}
		t.Logf("\t%s\tShould refuse to overwrite an account.", success)
	}
}
