package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"francoggm/paygw-wallet/internal/app/storage"
	"francoggm/paygw-wallet/internal/config"
	"francoggm/paygw-wallet/internal/models"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const usage = `usage: walletctl <command> [flags]

commands:
  credit      add funds to a user's wallet
  balance     show a user's balance and recent transactions
  payable     set the price of an item served from the payable store
  unpayable   remove an item from the payable store
  session     open a session for a user and print its token
  payments    list a user's wallet payments
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	_ = godotenv.Load()
	cfg := config.NewConfig()
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Cache.Host, cfg.Cache.Port),
		Password: cfg.Cache.Password,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "credit":
		err = credit(ctx, rdb, args[1:])
	case "balance":
		err = balance(ctx, rdb, args[1:])
	case "payable":
		err = payable(ctx, rdb, args[1:])
	case "unpayable":
		err = unpayable(ctx, rdb, args[1:])
	case "session":
		err = session(ctx, rdb, cfg.Server.SessionTTL, args[1:])
	case "payments":
		err = payments(ctx, rdb, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "walletctl:", err)
		return 1
	}
	return 0
}

func credit(ctx context.Context, rdb *redis.Client, args []string) error {
	fs := flag.NewFlagSet("credit", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id")
	amount := fs.String("amount", "", "amount to add")
	description := fs.String("description", "Top up", "transaction description")
	fs.Parse(args)

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	tx, err := storage.NewBalanceStore(rdb).Credit(ctx, *userID, value, models.CategoryTopUp, 0, *description)
	if err != nil {
		return err
	}

	fmt.Printf("balance of user %d: %s -> %s\n", *userID, tx.BalanceBefore, tx.BalanceAfter)
	return nil
}

func balance(ctx context.Context, rdb *redis.Client, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id")
	limit := fs.Int64("limit", 10, "number of transactions to show")
	fs.Parse(args)

	store := storage.NewBalanceStore(rdb)
	value, err := store.Balance(ctx, *userID)
	if err != nil {
		return err
	}
	fmt.Printf("balance of user %d: %s\n", *userID, value)

	transactions, err := store.Transactions(ctx, *userID, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tCATEGORY\tAMOUNT\tBALANCE\tDESCRIPTION")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", tx.CreatedAt.Format(time.RFC3339), tx.Type, tx.Category, tx.Amount, tx.BalanceAfter, tx.Description)
	}
	return w.Flush()
}

func payable(ctx context.Context, rdb *redis.Client, args []string) error {
	fs := flag.NewFlagSet("payable", flag.ExitOnError)
	component := fs.String("component", "", "component")
	paymentArea := fs.String("area", "", "payment area")
	itemID := fs.Int64("item", 0, "item id")
	accountID := fs.Int64("account", 0, "payment account id")
	amount := fs.String("amount", "", "price")
	currency := fs.String("currency", "", "ISO-4217 currency")
	fs.Parse(args)

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	return storage.NewPayableStore(rdb).SavePayable(ctx, &models.Payable{
		Component:   *component,
		PaymentArea: *paymentArea,
		ItemID:      *itemID,
		AccountID:   *accountID,
		Amount:      value,
		Currency:    *currency,
	})
}

func unpayable(ctx context.Context, rdb *redis.Client, args []string) error {
	fs := flag.NewFlagSet("unpayable", flag.ExitOnError)
	component := fs.String("component", "", "component")
	paymentArea := fs.String("area", "", "payment area")
	itemID := fs.Int64("item", 0, "item id")
	fs.Parse(args)

	return storage.NewPayableStore(rdb).DeletePayable(ctx, *component, *paymentArea, *itemID)
}

func session(ctx context.Context, rdb *redis.Client, ttl time.Duration, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id")
	revoke := fs.String("revoke", "", "token to revoke instead of opening a session")
	fs.Parse(args)

	store := storage.NewSessionStore(rdb, ttl)
	if *revoke != "" {
		return store.Delete(ctx, *revoke)
	}

	token, err := store.Create(ctx, *userID)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func payments(ctx context.Context, rdb *redis.Client, args []string) error {
	fs := flag.NewFlagSet("payments", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id")
	fs.Parse(args)

	list, err := storage.NewPaymentStore(rdb).ListPayments(ctx, *userID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPONENT\tAREA\tITEM\tAMOUNT\tCURRENCY\tCREATED")
	for _, p := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n", p.ID, p.Component, p.PaymentArea, p.ItemID, p.Amount, p.Currency, p.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
