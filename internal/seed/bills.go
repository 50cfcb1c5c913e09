package seed

import (
	"context"
	"fmt"

	"billed/internal/store"
	"billed/internal/utils"
	"billed/pkg/types"
)

// SeedBills upserts the demo expense reports for the employee account.
// IDs are fixed so reruns update rather than duplicate.
//
// To generate new IDs: `go run ./cmd/billed nanoid`
func SeedBills(ctx context.Context, repo *store.BillRepository) error {
	bills := []types.Bill{
		{
			ID:         "47qAXb6fIm2zOKkLzMro",
			Email:      "employee@test.tld",
			Type:       "Hôtel et logement",
			Name:       "encore",
			Amount:     400,
			Date:       "2004-04-04",
			VAT:        utils.Int64Ptr(80),
			Pct:        utils.Int64Ptr(20),
			Commentary: utils.StringPtr("séminaire billed"),
			FileURL:    utils.StringPtr("https://test.storage.tld/receipts/47qAXb6fIm2zOKkLzMro/facture-2004.jpg"),
			FileName:   utils.StringPtr("facture-2004.jpg"),
			Status:     types.BillStatusPending,
		},
		{
			ID:       "BeKy5Mo4jkmdfPGYpTxZ",
			Email:    "employee@test.tld",
			Type:     "Transports",
			Name:     "test1",
			Amount:   100,
			Date:     "2001-01-01",
			VAT:      utils.Int64Ptr(20),
			Pct:      utils.Int64Ptr(20),
			FileURL:  utils.StringPtr("https://test.storage.tld/receipts/BeKy5Mo4jkmdfPGYpTxZ/billet-train.jpg"),
			FileName: utils.StringPtr("billet-train.jpg"),
			Status:   types.BillStatusRefused,
		},
		{
			ID:       "UIUZtnPQvnbFnB0ozvJh",
			Email:    "employee@test.tld",
			Type:     "Restaurants et bars",
			Name:     "test2",
			Amount:   200,
			Date:     "2002-02-02",
			VAT:      utils.Int64Ptr(40),
			Pct:      utils.Int64Ptr(20),
			FileURL:  utils.StringPtr("https://test.storage.tld/receipts/UIUZtnPQvnbFnB0ozvJh/addition.jpg"),
			FileName: utils.StringPtr("addition.jpg"),
			Status:   types.BillStatusAccepted,
		},
		{
			ID:       "qcCK3SzECmaZAGRrHjaC",
			Email:    "employee@test.tld",
			Type:     "Services en ligne",
			Name:     "test3",
			Amount:   300,
			Date:     "2003-03-03",
			VAT:      utils.Int64Ptr(60),
			Pct:      utils.Int64Ptr(20),
			FileURL:  utils.StringPtr("https://test.storage.tld/receipts/qcCK3SzECmaZAGRrHjaC/abonnement.png"),
			FileName: utils.StringPtr("abonnement.png"),
			Status:   types.BillStatusPending,
		},
	}

	fmt.Printf("Seeding %d bills...\n", len(bills))

	for i := range bills {
		if err := repo.UpsertBill(ctx, &bills[i]); err != nil {
			return fmt.Errorf("failed to seed bill %s: %w", bills[i].ID, err)
		}
	}

	fmt.Printf("Bills seeded: %d upserted\n", len(bills))
	return nil
}
