package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"francoggm/paygw-wallet/internal/app/client"
	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/logger"

	"go.uber.org/zap"
)

type printNavigator struct {
	out io.Writer
}

func (n printNavigator) Navigate(url string) error {
	_, err := fmt.Fprintln(n.out, url)
	return err
}

type logOptionRemover struct {
	log *zap.Logger
}

func (r logOptionRemover) RemoveWalletOption() {
	r.log.Info("Wallet removed from the payment options of this item")
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		serverURL   = flag.String("url", "http://localhost:8080", "base url of the payment server")
		session     = flag.String("session", os.Getenv("WALLET_SESSION"), "session token of the paying user")
		component   = flag.String("component", "", "component that owns the item, e.g. mod_quiz")
		paymentArea = flag.String("area", "", "payment area within the component")
		itemID      = flag.Int64("item", 0, "item id")
		description = flag.String("description", "", "description shown in the wallet history")
		timeout     = flag.Duration("timeout", 10*time.Second, "request timeout")
		discover    = flag.Bool("discover", true, "ask the server which components grant wallet credit")
		acceptLang  = flag.String("lang", os.Getenv("LANG"), "preferred language for messages")
		logLevel    = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	log := logger.New(*logLevel)
	defer log.Sync()

	if *component == "" || *paymentArea == "" || *itemID <= 0 {
		flag.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	strs := lang.NewManager()
	ctx = lang.WithLanguage(ctx, strs.Match(*acceptLang))

	caller := client.NewAjaxClient(*serverURL, *session, *timeout)

	grants := client.NewGrantSet(client.DefaultWalletGrantingComponents...)
	if *discover {
		info, err := client.FetchGatewayInfo(ctx, caller)
		if err != nil {
			log.Warn("Falling back to the default wallet granting components", zap.Error(err))
		} else {
			grants = client.NewGrantSet(info.WalletGrantingComponents...)
		}
	}

	initiator := client.NewInitiator(caller, grants, logOptionRemover{log: log}, printNavigator{out: os.Stdout}, strs)

	message, err := initiator.Process(ctx, *component, *paymentArea, *itemID, *description)
	if err != nil {
		var paymentErr *client.PaymentError
		if errors.As(err, &paymentErr) {
			fmt.Fprintln(os.Stderr, paymentErr.Reason)
			return 1
		}
		fmt.Fprintln(os.Stderr, "payment failed:", err)
		return 1
	}

	fmt.Fprintln(os.Stderr, message)
	return 0
}

