package lang

var english = map[string]string{
	"pluginname":         "Pay with wallet",
	"gatewayname":        "Wallet",
	"gatewaydescription": "Pay using the balance of your wallet.",
	"walletnotforwallet": "The wallet cannot be used to pay for wallet credit.",
	"paymentsuccessfull": "Payment successful. You will be redirected to {$a}",
	"noenoughbalance":    "You do not have enough balance in your wallet to complete this payment.",
	"paymentfailed":      "The payment could not be completed.",
}
