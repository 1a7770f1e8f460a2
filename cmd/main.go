package main

import (
	"os"

	"github.com/MullenglobalCanada/smartpay/cmd/smartpay"
)

func main() {
	if err := smartpay.Execute(); err != nil {
		os.Exit(1)
	}
}
