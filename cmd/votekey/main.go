// votekey generates an RSA keypair for a voting ledger participant and
// prints it hex-encoded, the same transport format the HTTP API's
// /generateKeys returns.
package main

import (
	"fmt"
	"os"

	"github.com/equa/votenode/ballot"
)

func main() {
	priv, pub, err := ballot.GenerateKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating keys: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Public Key: %s\n", pub)
	fmt.Printf("Private Key: %s\n", priv)
}
